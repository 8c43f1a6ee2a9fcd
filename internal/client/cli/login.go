package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	identifier, err := c.io.ReadInput("Email or username: ")
	if err != nil {
		return fmt.Errorf("failed to read identifier: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	user, err := c.authService.Login(ctx, identifier, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Role:     %s\n", user.Role)
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
