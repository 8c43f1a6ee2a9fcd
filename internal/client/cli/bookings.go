package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/urugendo/pkg/api"
)

func (c *Cli) runBookings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: urugendo bookings <list|upcoming|past|create|cancel>")
	}

	switch args[0] {
	case "list":
		return c.runBookingsList(ctx, "list", c.apiClient.GetAllBookings)
	case "upcoming":
		return c.runBookingsList(ctx, "upcoming", c.apiClient.UpcomingBookings)
	case "past":
		return c.runBookingsList(ctx, "past", c.apiClient.PastBookings)
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("missing slot ID. Usage: urugendo bookings create <slot-id>")
		}
		return c.runBookingsCreate(ctx, args[1])
	case "cancel":
		if len(args) < 2 {
			return fmt.Errorf("missing booking ID. Usage: urugendo bookings cancel <id>")
		}
		return c.runBookingsCancel(ctx, args[1])
	default:
		return fmt.Errorf("unknown subcommand: %s. Use: list, upcoming, past, create, or cancel", args[0])
	}
}

func (c *Cli) runBookingsList(ctx context.Context, kind string, fetch func(context.Context) ([]api.Booking, error)) error {
	if err := c.requireRole("bookings " + kind); err != nil {
		return err
	}

	c.io.Printf("=== Bookings (%s) ===\n", kind)
	c.io.Println()

	bookings, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	if len(bookings) == 0 {
		c.io.Println("No bookings found.")
		return nil
	}

	for i, b := range bookings {
		c.io.Printf("%d. %s\n", i+1, b.ExperienceTitle)
		c.io.Printf("   ID:     %s\n", b.ID)
		c.io.Printf("   Status: %s\n", b.Status)
		c.io.Printf("   Guests: %d\n", b.Guests)
		c.io.Printf("   Total:  %.2f (%.2f per guest)\n", b.TotalPrice, b.PricePerGuest)
		if b.Slot != nil {
			c.io.Printf("   When:   %s %s-%s\n", b.Slot.Date, b.Slot.StartTime, b.Slot.EndTime)
		}
		c.io.Println()
	}

	return nil
}

func (c *Cli) runBookingsCreate(ctx context.Context, slotID string) error {
	if err := c.requireRole("bookings create", api.RoleTourist); err != nil {
		return err
	}

	guestsInput, err := c.io.ReadInput("Number of guests: ")
	if err != nil {
		return fmt.Errorf("failed to read guest count: %w", err)
	}
	guests, err := strconv.Atoi(guestsInput)
	if err != nil || guests < 1 {
		return fmt.Errorf("guest count must be a positive number")
	}

	booking, err := c.apiClient.CreateBooking(ctx, api.CreateBookingRequest{
		SlotID: slotID,
		Guests: guests,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Booking created!")
	c.io.Printf("ID:     %s\n", booking.ID)
	c.io.Printf("Status: %s\n", booking.Status)
	c.io.Printf("Total:  %.2f\n", booking.TotalPrice)

	return nil
}

func (c *Cli) runBookingsCancel(ctx context.Context, id string) error {
	if err := c.requireRole("bookings cancel"); err != nil {
		return err
	}

	booking, err := c.apiClient.UpdateBookingStatus(ctx, id, api.UpdateBookingRequest{
		Status: api.BookingCancelled,
	})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Booking %s is now %s.\n", booking.ID, booking.Status)
	return nil
}
