package services

import (
	"errors"
	"fmt"
)

// ErrParentNotFound is returned when a comment references a well-formed
// guide or post id that does not resolve to an existing record.
var ErrParentNotFound = errors.New("parent not found")

// ValidationError marks client-correctable input problems. Handlers map
// it to a 400 response with the reason as the message.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
