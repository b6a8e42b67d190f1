package usecase

import (
	"errors"
	"fmt"
)

// Error kinds returned by services. Handlers map them to status codes with
// errors.Is; the wrapping message is what the client sees.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrUnverified         = errors.New("email not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUpload             = errors.New("media upload failed")
	ErrValidation         = errors.New("validation failed")
)

// Error pairs a client-facing message with one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}
