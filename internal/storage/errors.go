package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrEntryNotFound indicates that a budget or variable entry was
	// not found within the caller's scope
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryExists indicates that a budget entry already exists for
	// the (user, month, year) period
	ErrEntryExists = errors.New("budget entry already exists for period")
)
