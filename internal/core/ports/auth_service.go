package ports

import (
	"context"
	"time"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

// AuthService covers registration, login, and the token lifecycle.
type AuthService interface {
	// Register creates an account with the default user role.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials. Both unknown email and wrong password
	// fail the same way.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	// IssueToken signs an opaque session token for the given user.
	IssueToken(userID string) (string, error)
	// ValidateToken resolves a token to its user. Malformed tokens, bad
	// signatures, revoked tokens, and tokens for deleted users are all
	// rejected uniformly.
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
	// RevokeToken invalidates a token until its natural expiry. Tokens that
	// fail to parse are ignored.
	RevokeToken(ctx context.Context, token string) error
}

// TokenRevoker stores revoked tokens until they would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
