package errors

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserLockedOut      = errors.New("user is locked out")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrSigningFailure     = errors.New("token signing failed")
)

// ValidationError carries the full list of reasons an input was rejected,
// never a single collapsed message.
type ValidationError struct {
	Descriptions []string
}

func NewValidationError(descriptions ...string) *ValidationError {
	return &ValidationError{Descriptions: descriptions}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Descriptions, "; ")
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
