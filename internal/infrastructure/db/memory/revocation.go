// Package memory provides a process-local revocation store for single
// instance deployments and development without Redis.
package memory

import (
	"context"
	"sync"
	"time"
)

const defaultWatermarkTTL = 30 * 24 * time.Hour

type RevocationStore struct {
	mu           sync.Mutex
	tokens       map[string]time.Time
	subjects     map[string]time.Time
	watermarkTTL time.Duration
	now          func() time.Time
}

// NewRevocationStore creates an empty store. A revoke-all watermark is
// forgotten once it is older than watermarkTTL, which must be at least the
// refresh token TTL.
func NewRevocationStore(watermarkTTL time.Duration) *RevocationStore {
	if watermarkTTL <= 0 {
		watermarkTTL = defaultWatermarkTTL
	}
	return &RevocationStore{
		tokens:       make(map[string]time.Time),
		subjects:     make(map[string]time.Time),
		watermarkTTL: watermarkTTL,
		now:          time.Now,
	}
}

func (s *RevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	if until.After(s.now()) {
		s.tokens[tokenID] = until
	}
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.tokens[tokenID]
	return ok && until.After(s.now()), nil
}

func (s *RevocationStore) RevokeSubject(_ context.Context, subject string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	if at.After(s.subjects[subject]) {
		s.subjects[subject] = at
	}
	return nil
}

func (s *RevocationStore) SubjectRevokedAt(_ context.Context, subject string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.subjects[subject], nil
}

// sweepLocked drops entries that can no longer reject an unexpired token.
func (s *RevocationStore) sweepLocked() {
	now := s.now()
	for id, until := range s.tokens {
		if !until.After(now) {
			delete(s.tokens, id)
		}
	}
	cutoff := now.Add(-s.watermarkTTL)
	for subject, at := range s.subjects {
		if !at.After(cutoff) {
			delete(s.subjects, subject)
		}
	}
}
