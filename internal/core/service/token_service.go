package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

// SigningKey is an HMAC secret identified by the kid header.
type SigningKey struct {
	ID     string
	Secret []byte
}

// TokenConfig configures the token service. Previous keys verify tokens but
// never sign new ones.
type TokenConfig struct {
	Signing    SigningKey
	Previous   []SigningKey
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// WithRevocationStore enables refresh-token revocation.
func WithRevocationStore(store ports.RevocationStore) TokenOption {
	return func(s *TokenService) { s.revocations = store }
}

type tokenClaims struct {
	Kind domain.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access and refresh tokens.
type TokenService struct {
	signing     SigningKey
	keys        map[string][]byte
	accessTTL   time.Duration
	refreshTTL  time.Duration
	now         func() time.Time
	revocations ports.RevocationStore
	parser      *jwt.Parser
}

func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if len(cfg.Signing.Secret) == 0 {
		return nil, errors.New("token service: signing secret is empty")
	}
	if cfg.Signing.ID == "" {
		return nil, errors.New("token service: signing key id is empty")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token service: token TTLs must be positive")
	}
	if cfg.AccessTTL >= cfg.RefreshTTL {
		return nil, errors.New("token service: access TTL must be shorter than refresh TTL")
	}

	keys := make(map[string][]byte, len(cfg.Previous)+1)
	for _, k := range cfg.Previous {
		if k.ID == "" || len(k.Secret) == 0 {
			return nil, fmt.Errorf("token service: previous key %q is incomplete", k.ID)
		}
		keys[k.ID] = k.Secret
	}
	keys[cfg.Signing.ID] = cfg.Signing.Secret

	s := &TokenService{
		signing:    cfg.Signing,
		keys:       keys,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	)
	return s, nil
}

func (s *TokenService) IssueAccess(subject string) (string, error) {
	return s.issue(subject, domain.TokenAccess, s.accessTTL)
}

func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, domain.TokenRefresh, s.refreshTTL)
}

func (s *TokenService) issue(subject string, kind domain.TokenKind, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("issue %s token: empty subject", kind)
	}

	now := s.now()
	claims := tokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = s.signing.ID

	signed, err := t.SignedString(s.signing.Secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature, expiry and kind. Refresh tokens are additionally
// checked against the revocation store; access tokens never touch a store.
func (s *TokenService) Verify(ctx context.Context, raw string, expected domain.TokenKind) (*domain.TokenClaims, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.Kind != expected {
		return nil, domain.ErrTokenKind
	}
	if expected == domain.TokenRefresh {
		if err := s.checkRevoked(ctx, claims); err != nil {
			return nil, err
		}
	}
	return claims.toDomain(), nil
}

func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Verify(ctx, refreshToken, domain.TokenRefresh)
	if err != nil {
		return "", err
	}
	return s.IssueAccess(claims.Subject)
}

func (s *TokenService) Revoke(ctx context.Context, refreshToken string, all bool) error {
	if s.revocations == nil {
		return errors.New("token revocation is not configured")
	}

	claims, err := s.Verify(ctx, refreshToken, domain.TokenRefresh)
	if err != nil {
		return err
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if all {
		// Tokens issued within the same second as the watermark are rejected too.
		if err := s.revocations.RevokeSubject(ctx, claims.Subject, s.now().Truncate(time.Second)); err != nil {
			return fmt.Errorf("revoke subject tokens: %w", err)
		}
	}
	return nil
}

func (s *TokenService) parse(raw string) (*tokenClaims, error) {
	if raw == "" {
		return nil, domain.ErrTokenMissing
	}

	claims := &tokenClaims{}
	if _, err := s.parser.ParseWithClaims(raw, claims, s.keyFunc); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if claims.Subject == "" || claims.ID == "" || claims.IssuedAt == nil {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) keyFunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return s.signing.Secret, nil
	}
	secret, ok := s.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return secret, nil
}

func (s *TokenService) checkRevoked(ctx context.Context, c *tokenClaims) error {
	if s.revocations == nil {
		return nil
	}

	revoked, err := s.revocations.IsRevoked(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return domain.ErrTokenRevoked
	}

	watermark, err := s.revocations.SubjectRevokedAt(ctx, c.Subject)
	if err != nil {
		return fmt.Errorf("check subject revocation: %w", err)
	}
	if !watermark.IsZero() && !c.IssuedAt.Time.After(watermark) {
		return domain.ErrTokenRevoked
	}
	return nil
}

func (c *tokenClaims) toDomain() *domain.TokenClaims {
	out := &domain.TokenClaims{
		Subject: c.Subject,
		Kind:    c.Kind,
		ID:      c.ID,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
