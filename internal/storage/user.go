package storage

import (
	"context"

	"budgetplanner/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user and fills in its generated ID.
	// Returns ErrUserAlreadyExists if username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username.
	// Returns ErrUserNotFound if user doesn't exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID.
	// Returns ErrUserNotFound if user doesn't exist.
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}
