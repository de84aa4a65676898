package auth

// Client-facing lifetime labels returned alongside every token pair. The
// actual TTLs are tunable via JWT_ACCESS_TTL / REFRESH_TTL, these strings
// are what mobile clients display and schedule refreshes around.
const (
	AccessTokenLifetime  = "15m"
	RefreshTokenLifetime = "7d"
)

// RegisterRequest and LoginRequest carry `validate` tags instead of gin
// `binding` tags: the service runs them through the validator so a bad
// request reports every violation at once, not just the first.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone string `json:"phone,omitempty"`
}

type TokenPair struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        string `json:"expires_in"`
	RefreshExpiresIn string `json:"refresh_expires_in"`
}
