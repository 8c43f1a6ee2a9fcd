package cli

import (
	"context"
	"fmt"
	"strings"

	clientapi "github.com/iudanet/urugendo/internal/client/api"
	"github.com/iudanet/urugendo/pkg/api"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: urugendo profile <show>")
	}

	switch args[0] {
	case "show":
		return c.runProfileShow(ctx)
	default:
		return fmt.Errorf("unknown subcommand: %s. Use: show", args[0])
	}
}

func (c *Cli) runProfileShow(ctx context.Context) error {
	if err := c.requireRole("profile show"); err != nil {
		return err
	}

	user := c.authService.Session().User()

	profile, err := c.apiClient.GetProfileByID(ctx, user.ID)
	if err != nil {
		// 404 — отдельная ветка: профиль еще не создан, это не ошибка
		if clientapi.IsNotFound(err) {
			c.io.Println("You have no profile yet.")
			c.io.Println("Create one to tell guides and travelers about yourself.")
			return nil
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	switch profile.Role {
	case api.RoleTourist:
		c.io.Println("=== Tourist Profile ===")
		c.io.Printf("ID: %s\n", profile.Tourist.ID)
		if len(profile.Tourist.TravelPreferences) > 0 {
			c.io.Printf("Travel preferences: %s\n", strings.Join(profile.Tourist.TravelPreferences, ", "))
		}
		if len(profile.Tourist.Languages) > 0 {
			c.io.Printf("Languages: %s\n", strings.Join(profile.Tourist.Languages, ", "))
		}
		if len(profile.Tourist.PaymentMethods) > 0 {
			c.io.Printf("Payment methods: %s\n", strings.Join(profile.Tourist.PaymentMethods, ", "))
		}
	case api.RoleGuide:
		c.io.Println("=== Guide Profile ===")
		c.io.Printf("ID:   %s\n", profile.Guide.ID)
		c.io.Printf("Name: %s\n", profile.Guide.Name)
		if profile.Guide.Bio != "" {
			c.io.Printf("Bio:  %s\n", profile.Guide.Bio)
		}
		if len(profile.Guide.Expertise) > 0 {
			c.io.Printf("Expertise: %s\n", strings.Join(profile.Guide.Expertise, ", "))
		}
		if profile.Guide.Location != nil {
			c.io.Printf("Location:  %s\n", profile.Guide.Location.PlaceName)
		}
	case api.RoleAdmin:
		c.io.Println("=== Admin ===")
		c.io.Printf("ID: %s\n", profile.Admin.ID)
	}

	return nil
}
