package cli

import (
	"context"
	"fmt"
	"os"
)

// Run выполняет команду и завершает процесс с кодом 1 при ошибке
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "register":
		err = c.runRegister(ctx)
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "whoami", "me":
		err = c.runWhoami(ctx)
	case "experiences":
		err = c.runExperiences(ctx, args)
	case "bookings":
		err = c.runBookings(ctx, args)
	case "profile":
		err = c.runProfile(ctx, args)
	case "reviews":
		err = c.runReviews(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
