package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind discriminates what a token may be used for. An access token presented
// where a refresh token is expected (or the reverse) is rejected.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// Identity is the signed subject of every issued token. It is fixed at issue
// time; later profile changes do not rewrite tokens already in the wild.
type Identity struct {
	UserID int64
	Email  string
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Kind   Kind   `json:"kind"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies the access/refresh token pair. A single shared
// HS256 secret signs both kinds; the kind claim keeps them apart.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) GenerateAccess(id Identity) (string, error) {
	return s.generate(id, KindAccess, s.accessTTL)
}

func (s *Service) GenerateRefresh(id Identity) (string, error) {
	return s.generate(id, KindRefresh, s.refreshTTL)
}

func (s *Service) generate(id Identity, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Kind:   kind,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature, expiry and kind, in that order. It never touches
// any store: a structurally valid refresh token may still have been revoked,
// which is the session service's concern, not the codec's.
func (s *Service) Validate(tokenStr string, expect Kind) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if t.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != expect {
		return nil, ErrWrongTokenKind
	}

	return claims, nil
}
