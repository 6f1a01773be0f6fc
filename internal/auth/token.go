package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"budgetplanner/internal/config"
	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

// Token type claims. Access tokens are stateless; refresh tokens are
// additionally tracked in the ledger so they can be revoked.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers every verification failure: bad signature,
// expiry, wrong token type, revoked or never-issued refresh token.
// Callers get no further detail; a revoked token looks exactly like a
// forged one.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by both token types.
type Claims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues, verifies and revokes the two session token
// tiers. Access tokens are verified purely cryptographically; refresh
// tokens are verified against the persisted ledger as well.
type TokenService struct {
	cfg    *config.Config
	users  storage.UserStorage
	tokens storage.TokenStorage
}

// NewTokenService creates a token service bound to the given config
// and stores.
func NewTokenService(cfg *config.Config, users storage.UserStorage, tokens storage.TokenStorage) *TokenService {
	return &TokenService{
		cfg:    cfg,
		users:  users,
		tokens: tokens,
	}
}

// IssueAccess creates a signed access token for the user. No state is
// persisted; validity is signature plus expiry.
func (s *TokenService) IssueAccess(user *models.User) (string, error) {
	return s.sign(user, TokenTypeAccess, s.cfg.AccessSecret, s.cfg.AccessTokenTTL)
}

// IssueRefresh creates a signed refresh token for the user and
// records it in the token ledger. A persistence failure propagates;
// no token is returned in that case.
func (s *TokenService) IssueRefresh(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.RefreshTokenTTL)

	token, err := s.sign(user, TokenTypeRefresh, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return "", err
	}

	row := &models.RefreshToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	if err := s.tokens.SaveRefreshToken(ctx, row); err != nil {
		return "", fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return token, nil
}

// VerifyAccess validates a signed access token and returns its claims.
// Returns ErrInvalidToken for any verification failure.
func (s *TokenService) VerifyAccess(tokenString string) (*Claims, error) {
	return s.parse(tokenString, TokenTypeAccess, s.cfg.AccessSecret)
}

// VerifyRefresh validates a refresh token: signature, expiry and type
// first, then a non-revoked ledger row must exist. On success the
// owning user is resolved and returned. Every verification failure is
// ErrInvalidToken; only storage faults surface as distinct errors.
func (s *TokenService) VerifyRefresh(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.parse(tokenString, TokenTypeRefresh, s.cfg.RefreshSecret)
	if err != nil {
		return nil, err
	}

	// Revocation is enforced via the ledger, not the signature.
	if _, err := s.tokens.GetRefreshToken(ctx, tokenString); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve token owner: %w", err)
	}

	return user, nil
}

// Revoke marks the refresh token revoked in the ledger. Revoking an
// unknown or already-revoked token is a no-op, not an error.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	return s.tokens.RevokeRefreshToken(ctx, tokenString)
}

// RevokeAll revokes every refresh token of a user and returns the count.
func (s *TokenService) RevokeAll(ctx context.Context, userID int64) (int, error) {
	return s.tokens.RevokeUserTokens(ctx, userID)
}

func (s *TokenService) sign(user *models.User, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:    user.ID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "budgetplanner",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

func (s *TokenService) parse(tokenString, wantType, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
