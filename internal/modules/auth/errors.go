package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so a caller cannot probe which addresses are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")

	// ErrInvalidRefreshToken is the only refresh failure surfaced to
	// clients. The wrapped variants below keep the internal cause
	// distinguishable while still matching errors.Is on the generic one.
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrRefreshTokenNotFound  = fmt.Errorf("%w: not found in session store", ErrInvalidRefreshToken)
	ErrRefreshTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidRefreshToken)
	ErrRefreshTokenMalformed = fmt.Errorf("%w: malformed or badly signed", ErrInvalidRefreshToken)
)

// ValidationError reports every failed rule of a request at once, keyed by
// json field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
