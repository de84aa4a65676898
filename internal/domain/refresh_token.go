package domain

import "time"

// RefreshTokenRecord is one live refresh session.
//
// Records exist only in process memory: the registry is wiped on restart and
// users simply authenticate again. A refresh token absent from the registry
// is invalid no matter what its signature says, which is how logout revokes
// a token whose signature stays verifiable for days.
type RefreshTokenRecord struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the record has passed its own expiry.
func (r *RefreshTokenRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
