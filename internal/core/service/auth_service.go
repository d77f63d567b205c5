package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/chronolog/timetrack-system/internal/api/metrics"
	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

const tokenVersion = 1

// AuthService implements registration, login, and the token lifecycle.
// Tokens are HS256 JWTs carrying only the user ID; revoked tokens are tracked
// until expiry so logout takes effect immediately.
type AuthService struct {
	users    ports.UserRepository
	revoker  ports.TokenRevoker
	secret   string
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, revoker ports.TokenRevoker, secret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		revoker:  revoker,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register creates an account with the default user role. Duplicate emails
// surface as a Conflict from the repository.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := newUserRecord(email, password, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	metrics.UsersCreatedTotal.WithLabelValues(string(created.Role)).Inc()
	return created, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.Unauthorized("email or password is incorrect")
		}
		return nil, err
	}

	if !verifyPassword(password, user.AuthInfo) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.Unauthorized("email or password is incorrect")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, nil
}

// IssueToken signs a session token for the given user.
func (s *AuthService) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"version": tokenVersion,
		"userId":  userID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// ValidateToken resolves a token to its user. Every failure mode (malformed
// token, bad signature, expiry, revocation, deleted user) is reported as the
// same Unauthorized error.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil, domain.Unauthorized("not logged in")
	}

	revoked, err := s.revoker.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.Unauthorized("not logged in")
	}

	userID, _ := claims["userId"].(string)
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.Unauthorized("not logged in")
		}
		return nil, err
	}
	return user, nil
}

// RevokeToken marks a token revoked until it would expire on its own.
// Tokens that fail to parse never authenticated anything, so they are ignored.
func (s *AuthService) RevokeToken(ctx context.Context, token string) error {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil
	}

	ttl := s.tokenTTL
	if exp, perr := claims.GetExpirationTime(); perr == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return s.revoker.Revoke(ctx, token, ttl)
}

func (s *AuthService) parseClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
