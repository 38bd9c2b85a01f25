package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pizzadelivery/pizza-api/internal/api/metrics"
	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

// Context keys set by Auth and Principal.
const (
	ContextKeyClaims   = "token_claims"
	ContextKeyUsername = "username"
	ContextKeyUser     = "user"
)

// UserFinder resolves a token subject into a user record.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", domain.ErrTokenMissing
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrTokenInvalid
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrTokenMissing
	}
	return token, nil
}

// Auth validates the access token and injects its claims into context.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := BearerToken(c)
			if err != nil {
				RecordTokenRejection(domain.TokenAccess, err)
				return err
			}

			claims, err := tokens.Verify(c.Request().Context(), raw, domain.TokenAccess)
			if err != nil {
				RecordTokenRejection(domain.TokenAccess, err)
				return err
			}

			c.Set(ContextKeyClaims, claims)
			c.Set(ContextKeyUsername, claims.Subject)
			return next(c)
		}
	}
}

// Principal loads the user named by the verified token. A subject without a
// user record yields domain.ErrUserNotFound. With enforceActive, inactive
// users are rejected.
func Principal(users UserFinder, enforceActive bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ContextKeyClaims).(*domain.TokenClaims)
			if !ok || claims == nil {
				return domain.ErrTokenMissing
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				return err
			}
			if enforceActive && !user.IsActive {
				return domain.ErrInactiveUser
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// RecordTokenRejection counts a refused token by kind and reason.
func RecordTokenRejection(kind domain.TokenKind, err error) {
	metrics.TokenRejectionsTotal.WithLabelValues(string(kind), rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return "missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenKind):
		return "wrong_kind"
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid"
	default:
		return "error"
	}
}
