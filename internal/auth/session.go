package auth

import (
	"context"
	"errors"
	"fmt"

	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

// SessionResolver turns inbound cookie values into an authenticated
// identity. It never touches the HTTP response: when the slow path
// mints a replacement access token, the token is returned to the
// caller, which is responsible for setting the cookie.
type SessionResolver struct {
	tokens *TokenService
	users  storage.UserStorage
}

// NewSessionResolver creates a session resolver.
func NewSessionResolver(tokens *TokenService, users storage.UserStorage) *SessionResolver {
	return &SessionResolver{
		tokens: tokens,
		users:  users,
	}
}

// Resolve determines the authenticated user from the access and
// refresh token cookie values. The returned renewed string is
// non-empty only when the identity came from the refresh path, in
// which case it is a fresh access token the caller must hand back to
// the client; otherwise the client stays on the slow path forever.
//
// An unauthenticated request yields (nil, "", nil): absence of
// identity is a normal outcome, not an error. Errors are reserved for
// storage faults.
func (r *SessionResolver) Resolve(ctx context.Context, accessToken, refreshToken string) (*models.User, string, error) {
	if accessToken != "" {
		if claims, err := r.tokens.VerifyAccess(accessToken); err == nil {
			user, err := r.users.GetUserByID(ctx, claims.UserID)
			if err == nil {
				return user, "", nil
			}
			if !errors.Is(err, storage.ErrUserNotFound) {
				return nil, "", fmt.Errorf("failed to resolve session user: %w", err)
			}
			// Token for a deleted user; fall through to the refresh path.
		}
	}

	if refreshToken != "" {
		user, err := r.tokens.VerifyRefresh(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				return nil, "", nil
			}
			return nil, "", err
		}

		renewed, err := r.tokens.IssueAccess(user)
		if err != nil {
			return nil, "", fmt.Errorf("failed to renew access token: %w", err)
		}
		return user, renewed, nil
	}

	return nil, "", nil
}
