package auth

import (
	"context"
	"time"

	"github.com/22DP3HEisu/JustFitness-Mobile/internal/domain"
)

// UserRepositoryInterface covers only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// RefreshTokenStoreInterface is the in-memory session registry keyed by the
// raw refresh token string. A refresh token is live only while its record is
// present here, removal is how logout revokes it.
type RefreshTokenStoreInterface interface {
	Add(token string, userID int64, createdAt, expiresAt time.Time)
	Remove(token string) bool
	RemoveAllForUser(userID int64) int
	FindByToken(token string) (domain.RefreshTokenRecord, bool)
}
