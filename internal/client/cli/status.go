package cli

import (
	"context"

	"github.com/iudanet/urugendo/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	session := c.authService.Session()
	switch session.State() {
	case auth.StateAuthenticated:
		user := session.User()
		c.io.Println("Status: Authenticated")
		c.io.Printf("Username: %s\n", user.Username)
		c.io.Printf("Email:    %s\n", user.Email)
		c.io.Printf("Role:     %s\n", user.Role)
	case auth.StateAnonymous:
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'urugendo login' to authenticate.")
	default:
		c.io.Println("Status: Loading")
	}

	return nil
}

func (c *Cli) runWhoami(ctx context.Context) error {
	if err := c.requireRole("whoami"); err != nil {
		return err
	}

	// Перечитываем пользователя с сервера, а не из локального состояния
	user, err := c.authService.RefreshUser(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("ID:       %s\n", user.ID)
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Email:    %s\n", user.Email)
	if user.FirstName != "" || user.LastName != "" {
		c.io.Printf("Name:     %s %s\n", user.FirstName, user.LastName)
	}
	c.io.Printf("Role:     %s\n", user.Role)
	if user.ProfilePicture != "" {
		c.io.Printf("Avatar:   %s\n", user.ProfilePicture)
	}

	return nil
}
