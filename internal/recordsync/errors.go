package recordsync

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when the remote store is absent or unreachable.
	ErrNotConfigured = errors.New("remote store not configured")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation error")

	// ErrRemote is matched by every *RemoteError.
	ErrRemote = errors.New("remote error")

	// ErrTimeout is matched by a *RemoteError whose call ran out of time.
	ErrTimeout = errors.New("remote call timed out")

	// ErrBusy is returned when a submit or delete is already in flight.
	ErrBusy = errors.New("operation in progress")

	// ErrDeclined is returned when the operator does not confirm a deletion.
	ErrDeclined = errors.New("deletion not confirmed")

	// ErrNotFound is returned when a row id is not in the loaded list.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownField is returned when a form field name does not exist.
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError carries the operator-facing message of a failed form check.
type ValidationError struct {
	Message string
}

// Invalid builds a *ValidationError.
func Invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RemoteError wraps a failure reported by the store or the blob storage.
type RemoteError struct {
	Op      string
	Err     error
	Timeout bool
}

func (e *RemoteError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: %v: %v", e.Op, ErrTimeout, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrRemote:
		return true
	case ErrTimeout:
		return e.Timeout
	}
	return false
}

func newRemoteError(ctx context.Context, op string, err error) *RemoteError {
	timeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
	return &RemoteError{Op: op, Err: err, Timeout: timeout}
}
