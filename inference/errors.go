package inference

import "fmt"

// ValidationError is the only error the engine raises: the input is malformed
// or empty in a way that leaves no usable data points. It is always
// recoverable by the caller and its message is safe to show to end users.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
