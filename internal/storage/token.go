package storage

import (
	"context"

	"budgetplanner/internal/models"
)

// TokenStorage defines interface for refresh token persistence
type TokenStorage interface {
	// SaveRefreshToken stores a new refresh token ledger row.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// GetRefreshToken retrieves a non-revoked refresh token by its
	// token string. Returns ErrTokenNotFound if absent or revoked;
	// callers treat both identically.
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// RevokeRefreshToken marks the matching row revoked. Revoking an
	// unknown or already-revoked token is a no-op.
	RevokeRefreshToken(ctx context.Context, token string) error

	// RevokeUserTokens revokes all refresh tokens for a user.
	// Returns the number of tokens revoked.
	RevokeUserTokens(ctx context.Context, userID int64) (int, error)

	// DeleteExpiredTokens removes expired ledger rows.
	// Returns the number of rows deleted.
	DeleteExpiredTokens(ctx context.Context) (int, error)
}
