package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/22DP3HEisu/JustFitness-Mobile/internal/domain"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/pkg/token"
	"github.com/22DP3HEisu/JustFitness-Mobile/internal/pkg/validator"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type tokenService interface {
	GenerateAccess(id token.Identity) (string, error)
	GenerateRefresh(id token.Identity) (string, error)
	Validate(tokenStr string, expect token.Kind) (*token.Claims, error)
}

type passwordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// Service contains all business logic for authentication and session
// lifecycle. A refresh token is usable only while BOTH gates hold: its
// signature and expiry verify, and its record is still present in the
// session store. Logout removes the record, which kills the token even
// though the signature stays valid.
type Service struct {
	users      UserRepositoryInterface
	sessions   RefreshTokenStoreInterface
	tokens     tokenService
	passwords  passwordHasher
	refreshTTL time.Duration
}

func NewService(
	users UserRepositoryInterface,
	sessions RefreshTokenStoreInterface,
	tokens tokenService,
	passwords passwordHasher,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		passwords:  passwords,
		refreshTTL: refreshTTL,
	}
}

// Register creates an account and immediately opens a session for it, so a
// fresh signup lands in the app already logged in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, *TokenPair, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, nil, &ValidationError{Fields: fields}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Phone:        req.Phone,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Concurrent registration racing past the pre-check lands on the
		// unique index and must read the same as a caught duplicate.
		if isUniqueViolation(err) {
			return nil, nil, ErrEmailAlreadyExists
		}
		return nil, nil, err
	}

	pair, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, pair, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password both return ErrInvalidCredentials, the exact same value, so the
// response cannot be used to enumerate registered addresses.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, nil, &ValidationError{Fields: fields}
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := s.passwords.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Best effort, a failed stamp must not fail the login.
		log.Printf("auth: last login stamp failed user_id=%d error=%q", user.ID, err)
	} else {
		user.LastLoginAt = &now
	}

	user.PasswordHash = ""
	return user, pair, nil
}

// RefreshAccess exchanges a live refresh token for a fresh access token. The
// refresh token itself is not rotated, it stays usable until its own expiry
// or an explicit logout. Every failure surfaces as ErrInvalidRefreshToken so
// a caller learns nothing about why the token was rejected.
func (s *Service) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Validate(refreshToken, token.KindRefresh)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return "", ErrRefreshTokenExpired
		}
		return "", ErrRefreshTokenMalformed
	}

	record, ok := s.sessions.FindByToken(refreshToken)
	if !ok {
		return "", ErrRefreshTokenNotFound
	}
	if record.IsExpired(time.Now()) {
		// Expired records are purged lazily, only when someone presents
		// them. There is no background sweeper.
		s.sessions.Remove(refreshToken)
		return "", ErrRefreshTokenExpired
	}

	return s.tokens.GenerateAccess(token.Identity{UserID: claims.UserID, Email: claims.Email})
}

// Logout revokes one session. Unknown or already-revoked tokens are a no-op,
// so calling logout twice with the same token is safe.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	s.sessions.Remove(refreshToken)
}

// LogoutAll revokes every live session of the user, all devices at once, and
// reports how many were dropped. Outstanding access tokens are untouched and
// keep working until they expire on their own.
func (s *Service) LogoutAll(ctx context.Context, userID int64) int {
	return s.sessions.RemoveAllForUser(userID)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile changes name and phone. Email is immutable here.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// issueSession generates the token pair and registers the refresh token in
// the session store. Shared by Register and Login.
func (s *Service) issueSession(user *domain.User) (*TokenPair, error) {
	id := token.Identity{UserID: user.ID, Email: user.Email}

	accessToken, err := s.tokens.GenerateAccess(id)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefresh(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.sessions.Add(refreshToken, user.ID, now, now.Add(s.refreshTTL))

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        AccessTokenLifetime,
		RefreshExpiresIn: RefreshTokenLifetime,
	}, nil
}

// isUniqueViolation recognizes a duplicate-key insert on either backend:
// pgx reports SQLSTATE 23505, the SQLite driver message names the failed
// UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
