package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableClient points at a closed port so every command fails fast.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "revoked:jti:abc", tokenKey("abc"))
	assert.Equal(t, "revoked:sub:alice", subjectKey("alice"))
}

func TestNewRevocationStore_DefaultWatermarkTTL(t *testing.T) {
	s := NewRevocationStore(unreachableClient(t), 0)
	assert.Equal(t, defaultWatermarkTTL, s.watermarkTTL)

	s = NewRevocationStore(unreachableClient(t), time.Hour)
	assert.Equal(t, time.Hour, s.watermarkTTL)
}

func TestRevoke_ExpiredTokenSkipsRedis(t *testing.T) {
	s := NewRevocationStore(unreachableClient(t), time.Hour)

	err := s.Revoke(context.Background(), "jti", time.Now().Add(-time.Minute))
	assert.NoError(t, err)
}

func TestRevocationStore_FailsClosed(t *testing.T) {
	s := NewRevocationStore(unreachableClient(t), time.Hour)
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "jti")
	require.Error(t, err)
	assert.False(t, revoked)

	_, err = s.SubjectRevokedAt(ctx, "alice")
	assert.Error(t, err)

	assert.Error(t, s.Revoke(ctx, "jti", time.Now().Add(time.Hour)))
	assert.Error(t, s.RevokeSubject(ctx, "alice", time.Now()))
}

func newMiniRevocationStore(t *testing.T, watermarkTTL time.Duration) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationStore(client, watermarkTTL), mr
}

func TestRevocationStore_TokenDenylist(t *testing.T) {
	s, mr := newMiniRevocationStore(t, 168*time.Hour)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Revoke(ctx, "jti-1", now.Add(90*time.Minute)))
	assert.Equal(t, 90*time.Minute, mr.TTL(tokenKey("jti-1")))

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	mr.FastForward(90 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry lapses with the token")
}

func TestRevocationStore_RevokeUsesInjectedClock(t *testing.T) {
	s, mr := newMiniRevocationStore(t, time.Hour)
	now := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	// Expired for the store clock, still in the future for the wall clock.
	require.NoError(t, s.Revoke(context.Background(), "jti-old", now.Add(-time.Second)))
	assert.False(t, mr.Exists(tokenKey("jti-old")))
}

func TestRevocationStore_SubjectWatermark(t *testing.T) {
	s, mr := newMiniRevocationStore(t, 168*time.Hour)
	ctx := context.Background()

	at, err := s.SubjectRevokedAt(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, at.IsZero(), "no watermark for a fresh subject")

	revokedAt := time.Date(2026, 10, 18, 12, 30, 15, 750_000_000, time.UTC)
	require.NoError(t, s.RevokeSubject(ctx, "alice", revokedAt))

	raw, err := mr.Get(subjectKey("alice"))
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(revokedAt.Unix(), 10), raw)
	assert.Equal(t, 168*time.Hour, mr.TTL(subjectKey("alice")))

	at, err = s.SubjectRevokedAt(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, revokedAt.Truncate(time.Second), at)
}

func TestRevocationStore_CorruptWatermark(t *testing.T) {
	s, mr := newMiniRevocationStore(t, time.Hour)
	require.NoError(t, mr.Set(subjectKey("alice"), "not-a-number"))

	_, err := s.SubjectRevokedAt(context.Background(), "alice")
	assert.Error(t, err)
}
