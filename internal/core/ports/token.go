package ports

import (
	"context"
	"time"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

// TokenVerifier is the read side of the token service used by middleware.
type TokenVerifier interface {
	Verify(ctx context.Context, token string, expected domain.TokenKind) (*domain.TokenClaims, error)
}

// TokenService issues, verifies and revokes bearer tokens.
type TokenService interface {
	TokenVerifier
	IssueAccess(subject string) (string, error)
	IssueRefresh(subject string) (string, error)
	// Refresh verifies a refresh token and returns a new access token for the
	// same subject.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Revoke denylists a refresh token. With all set, every refresh token of
	// the subject issued up to now is rejected as well.
	Revoke(ctx context.Context, refreshToken string, all bool) error
}

// RevocationStore keeps the refresh-token denylist.
type RevocationStore interface {
	// Revoke marks tokenID as revoked until the given time.
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	// RevokeSubject rejects every token of subject issued at or before at.
	RevokeSubject(ctx context.Context, subject string, at time.Time) error
	// SubjectRevokedAt returns the subject's watermark, or the zero time.
	SubjectRevokedAt(ctx context.Context, subject string) (time.Time, error)
}
