package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/urugendo/internal/validation"
	"github.com/iudanet/urugendo/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Register ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	roleInput, err := c.io.ReadInput("Role (tourist/guide): ")
	if err != nil {
		return fmt.Errorf("failed to read role: %w", err)
	}
	role, err := parseRole(roleInput)
	if err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	firstName, err := c.io.ReadInput("First name (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}
	lastName, err := c.io.ReadInput("Last name (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}

	c.io.Println()
	c.io.Println("Registering...")

	err = c.authService.Register(ctx, api.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		FirstName:       firstName,
		LastName:        lastName,
		Role:            role,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("A verification link has been sent to %s.\n", email)
	c.io.Println("Verify your email, then run 'urugendo login'.")

	return nil
}

// parseRole переводит пользовательский ввод в роль. Admin аккаунты
// через регистрацию не создаются.
func parseRole(input string) (api.Role, error) {
	switch input {
	case "tourist", "Tourist":
		return api.RoleTourist, nil
	case "guide", "Guide":
		return api.RoleGuide, nil
	}
	return "", fmt.Errorf("unknown role %q: use tourist or guide", input)
}
