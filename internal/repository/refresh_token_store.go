package repository

import (
	"sync"
	"time"

	"github.com/22DP3HEisu/JustFitness-Mobile/internal/domain"
)

// RefreshTokenStore keeps every currently valid refresh token, keyed by the
// token string itself. It lives for the lifetime of the process and is the
// authority on whether a refresh token is still usable: a token that
// verifies cryptographically but has no record here is revoked.
//
// All access goes through one mutex, so a logout racing a refresh on the
// same token can never observe a half-removed record.
type RefreshTokenStore struct {
	mu      sync.RWMutex
	records map[string]domain.RefreshTokenRecord
}

func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{
		records: make(map[string]domain.RefreshTokenRecord),
	}
}

// Add registers a newly issued refresh token. Token strings embed a fresh
// jti, so collisions between sessions do not occur in practice.
func (s *RefreshTokenStore) Add(token string, userID int64, createdAt, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[token] = domain.RefreshTokenRecord{
		Token:     token,
		UserID:    userID,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}
}

// Remove deletes the record for the exact token string and reports whether
// one existed. Removing an unknown token is a quiet no-op, which makes
// logout idempotent.
func (s *RefreshTokenStore) Remove(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[token]; !ok {
		return false
	}
	delete(s.records, token)
	return true
}

// RemoveAllForUser drops every session belonging to one user and returns how
// many records went away. Zero is a valid answer.
func (s *RefreshTokenStore) RemoveAllForUser(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, rec := range s.records {
		if rec.UserID == userID {
			delete(s.records, token)
			removed++
		}
	}
	return removed
}

// FindByToken returns a copy of the record for the token, if present.
func (s *RefreshTokenStore) FindByToken(token string) (domain.RefreshTokenRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[token]
	return rec, ok
}

// Len reports the number of live records.
func (s *RefreshTokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
