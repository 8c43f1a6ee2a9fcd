package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/urugendo/internal/client/translate"
	"github.com/iudanet/urugendo/pkg/api"
)

// experienceFields — локализуемые текстовые поля experience
func experienceFields() []translate.Field[api.Experience] {
	return []translate.Field[api.Experience]{
		{
			Name: "title",
			Get:  func(e api.Experience) string { return e.Title },
			Set:  func(e *api.Experience, v string) { e.Title = v },
		},
		{
			Name: "description",
			Get:  func(e api.Experience) string { return e.Description },
			Set:  func(e *api.Experience, v string) { e.Description = v },
		},
	}
}

// localizeExperiences переводит карточки на язык вывода, если он задан.
// Перевод не может сломать вывод: при ошибке показываем оригинал.
func (c *Cli) localizeExperiences(ctx context.Context, items []api.Experience) []api.Experience {
	if c.lang == "" || c.translator == nil {
		return items
	}
	result := translate.Localize(ctx, c.translator, items, experienceFields(), c.lang, nil)
	return result.Items
}

func (c *Cli) runExperiences(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: urugendo experiences <list|get|create|delete>")
	}

	switch args[0] {
	case "list":
		return c.runExperiencesList(ctx)
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("missing experience ID. Usage: urugendo experiences get <id>")
		}
		return c.runExperiencesGet(ctx, args[1])
	case "create":
		return c.runExperiencesCreate(ctx)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("missing experience ID. Usage: urugendo experiences delete <id>")
		}
		return c.runExperiencesDelete(ctx, args[1])
	default:
		return fmt.Errorf("unknown subcommand: %s. Use: list, get, create, or delete", args[0])
	}
}

func (c *Cli) runExperiencesList(ctx context.Context) error {
	c.io.Println("=== Experiences ===")
	c.io.Println()

	page, err := c.apiClient.GetAllExperiences(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list experiences: %w", err)
	}

	if len(page.Results) == 0 {
		c.io.Println("No experiences found.")
		return nil
	}

	items := c.localizeExperiences(ctx, page.Results)

	c.io.Printf("Found %d experience(s):\n", page.Count)
	c.io.Println()

	for i, exp := range items {
		c.io.Printf("%d. %s\n", i+1, exp.Title)
		c.io.Printf("   ID:       %s\n", exp.ID)
		if exp.Description != "" {
			c.io.Printf("   About:    %s\n", exp.Description)
		}
		if len(exp.Expertise) > 0 {
			c.io.Printf("   Themes:   %s\n", strings.Join(exp.Expertise, ", "))
		}
		if exp.Location != nil {
			c.io.Printf("   Location: %s\n", exp.Location.PlaceName)
		}
		c.io.Println()
	}

	if page.Next != nil {
		c.io.Println("More results available on the next page.")
	}

	return nil
}

func (c *Cli) runExperiencesGet(ctx context.Context, id string) error {
	exp, err := c.apiClient.GetExperienceByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get experience: %w", err)
	}

	items := c.localizeExperiences(ctx, []api.Experience{*exp})
	localized := items[0]

	c.io.Printf("Title:       %s\n", localized.Title)
	c.io.Printf("ID:          %s\n", localized.ID)
	c.io.Printf("Guide:       %s\n", localized.Guide)
	if localized.Description != "" {
		c.io.Printf("Description: %s\n", localized.Description)
	}
	if len(localized.Languages) > 0 {
		c.io.Printf("Languages:   %s\n", strings.Join(localized.Languages, ", "))
	}
	if localized.Location != nil {
		c.io.Printf("Location:    %s\n", localized.Location.PlaceName)
	}

	slots, err := c.apiClient.GetExperienceSlots(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get slots: %w", err)
	}

	c.io.Println()
	if len(slots) == 0 {
		c.io.Println("No slots available.")
		return nil
	}

	c.io.Printf("Slots (%d):\n", len(slots))
	for _, slot := range slots {
		c.io.Printf("  %s  %s %s-%s  %.2f per guest, %d of %d left\n",
			slot.ID, slot.Date, slot.StartTime, slot.EndTime,
			slot.Price, slot.Remaining, slot.Capacity)
	}

	return nil
}

func (c *Cli) runExperiencesCreate(ctx context.Context) error {
	if err := c.requireRole("experiences create", api.RoleGuide, api.RoleAdmin); err != nil {
		return err
	}

	c.io.Println("=== Create Experience ===")
	c.io.Println()

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	description, err := c.io.ReadInput("Description: ")
	if err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}

	expertise, err := c.io.ReadInput("Themes (comma-separated): ")
	if err != nil {
		return fmt.Errorf("failed to read themes: %w", err)
	}

	exp, err := c.apiClient.CreateExperience(ctx, api.CreateExperienceRequest{
		Title:       title,
		Description: description,
		Expertise:   splitList(expertise),
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Experience created!")
	c.io.Printf("ID: %s\n", exp.ID)

	return nil
}

func (c *Cli) runExperiencesDelete(ctx context.Context, id string) error {
	if err := c.requireRole("experiences delete", api.RoleGuide, api.RoleAdmin); err != nil {
		return err
	}

	if err := c.apiClient.DeleteExperience(ctx, id); err != nil {
		return err
	}

	c.io.Printf("✓ Experience %s deleted.\n", id)
	return nil
}

// splitList разбирает comma-separated ввод в список непустых значений
func splitList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
