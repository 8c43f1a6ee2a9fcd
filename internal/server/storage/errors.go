package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that username or email is already taken
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrNotFound indicates that the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrProfileExists indicates that the user already has a profile
	ErrProfileExists = errors.New("profile already exists")

	// ErrSlotFull indicates that the slot has no remaining capacity
	// for the requested number of guests
	ErrSlotFull = errors.New("not enough remaining slots")
)
