package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runReviews(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: urugendo reviews <list>")
	}

	switch args[0] {
	case "list":
		if len(args) < 2 {
			return fmt.Errorf("missing experience ID. Usage: urugendo reviews list <experience-id>")
		}
		return c.runReviewsList(ctx, args[1])
	default:
		return fmt.Errorf("unknown subcommand: %s. Use: list", args[0])
	}
}

func (c *Cli) runReviewsList(ctx context.Context, experienceID string) error {
	reviews, err := c.apiClient.GetReviewsByExperience(ctx, experienceID)
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}

	if len(reviews) == 0 {
		c.io.Println("No reviews yet.")
		return nil
	}

	c.io.Printf("Found %d review(s):\n", len(reviews))
	c.io.Println()

	for _, review := range reviews {
		stars := strings.Repeat("★", review.Rating) + strings.Repeat("☆", 5-review.Rating)
		c.io.Printf("%s  %s\n", stars, review.Traveler.Username)
		if review.Comment != "" {
			c.io.Printf("   %s\n", review.Comment)
		}
		c.io.Println()
	}

	return nil
}
