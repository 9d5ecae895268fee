package application

import (
	"errors"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrCircleNotFound       = errors.New("circle not found")
	ErrAlreadyMember        = errors.New("already a member of this circle")
	ErrNotCircleMember      = errors.New("not a member of this circle")
	ErrCircleCreationFailed = errors.New("failed to create circle")
	ErrAlreadySubmitted     = errors.New("score already submitted for today")
)

// ValidationError is a domain-rule failure on a single input field.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
