package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultWatermarkTTL = 30 * 24 * time.Hour

// RevocationStore keeps revoked refresh tokens in Redis.
// Key formats:
//
//	revoked:jti:<token id>     expires with the token
//	revoked:sub:<username>     unix seconds of the last revoke-all
type RevocationStore struct {
	client       *redis.Client
	watermarkTTL time.Duration
	now          func() time.Time
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
// watermarkTTL bounds how long a revoke-all marker is kept and must be at
// least the refresh token TTL.
func NewRevocationStore(client *redis.Client, watermarkTTL time.Duration) *RevocationStore {
	if watermarkTTL <= 0 {
		watermarkTTL = defaultWatermarkTTL
	}
	return &RevocationStore{client: client, watermarkTTL: watermarkTTL, now: time.Now}
}

// Revoke records the token id until its natural expiry.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, tokenKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id is on the denylist.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) RevokeSubject(ctx context.Context, subject string, at time.Time) error {
	if err := s.client.Set(ctx, subjectKey(subject), at.Unix(), s.watermarkTTL).Err(); err != nil {
		return fmt.Errorf("revoke subject: %w", err)
	}
	return nil
}

func (s *RevocationStore) SubjectRevokedAt(ctx context.Context, subject string) (time.Time, error) {
	raw, err := s.client.Get(ctx, subjectKey(subject)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("subject revocation check: %w", err)
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("subject revocation value %q: %w", raw, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

func tokenKey(tokenID string) string {
	return "revoked:jti:" + tokenID
}

func subjectKey(subject string) string {
	return "revoked:sub:" + subject
}
