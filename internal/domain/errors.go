package domain

import (
	"errors"
	"fmt"
)

// ValidationError is a local input error. It never reaches the network.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteError is a non-2xx response from the remote API.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("remote status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote status %d: %s", e.StatusCode, e.Detail)
}

// Reason returns the user-visible text for err: the validation message,
// the server-provided detail, or fallback.
func Reason(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Detail != "" {
		return remoteErr.Detail
	}

	return fallback
}
