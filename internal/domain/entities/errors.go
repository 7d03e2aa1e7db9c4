package entities

import "errors"

// Error kinds. Specific errors wrap one of these so callers can match either
// the precise failure or its category with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrPrecondition  = errors.New("precondition error")
	ErrPayment       = errors.New("payment error")
	ErrNotFound      = errors.New("not found")
	ErrAuthorization = errors.New("authorization error")
	ErrConflict      = errors.New("conflict")
)

// ErrVersionConflict is returned by repositories when the stored version no
// longer matches the expected one.
var ErrVersionConflict = wrapKind(ErrConflict, "record was modified concurrently")

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.kind.Error() + ": " + e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func wrapKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// NewError builds a sentinel error of the given kind.
func NewError(kind error, msg string) error {
	return wrapKind(kind, msg)
}
