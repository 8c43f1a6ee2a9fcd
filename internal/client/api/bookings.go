package api

import (
	"context"
	"fmt"

	"github.com/iudanet/urugendo/pkg/api"
)

// CreateBooking бронирует слот
func (c *Client) CreateBooking(ctx context.Context, req api.CreateBookingRequest) (*api.Booking, error) {
	var booking api.Booking
	if err := c.doRequest(ctx, "POST", "/bookings/", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingByID возвращает бронирование по ID
func (c *Client) GetBookingByID(ctx context.Context, id string) (*api.Booking, error) {
	var booking api.Booking
	if err := c.doRequest(ctx, "GET", fmt.Sprintf("/bookings/%s/", id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetAllBookings возвращает бронирования текущего пользователя
// (для гида — бронирования его experiences, для админа — все)
func (c *Client) GetAllBookings(ctx context.Context) ([]api.Booking, error) {
	var bookings []api.Booking
	if err := c.doRequest(ctx, "GET", "/bookings/", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingsBySlot возвращает бронирования слота (для владеющего гида)
func (c *Client) GetBookingsBySlot(ctx context.Context, slotID string) ([]api.Booking, error) {
	var bookings []api.Booking
	if err := c.doRequest(ctx, "GET", fmt.Sprintf("/bookings/slot/%s/", slotID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus меняет статус бронирования
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, req api.UpdateBookingRequest) (*api.Booking, error) {
	var booking api.Booking
	if err := c.doRequest(ctx, "PATCH", fmt.Sprintf("/bookings/%s/", id), req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking отменяет и удаляет бронирование
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/bookings/%s/", id), nil, nil); err != nil {
		return fmt.Errorf("delete booking request failed: %w", err)
	}
	return nil
}

// UpcomingBookings возвращает будущие бронирования текущего пользователя
func (c *Client) UpcomingBookings(ctx context.Context) ([]api.Booking, error) {
	var bookings []api.Booking
	if err := c.doRequest(ctx, "GET", "/bookings/upcoming/", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// PastBookings возвращает прошедшие бронирования текущего пользователя
func (c *Client) PastBookings(ctx context.Context) ([]api.Booking, error) {
	var bookings []api.Booking
	if err := c.doRequest(ctx, "GET", "/bookings/past/", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
