package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrCapacityExceeded is reported to callers in the same class as
	// ErrInvalidInput: errors.Is(ErrCapacityExceeded, ErrInvalidInput) holds.
	ErrCapacityExceeded = fmt.Errorf("%w: no units of this game are available", ErrInvalidInput)
	ErrNotFound         = errors.New("not found")
	ErrAlreadySettled   = errors.New("rental already returned")
	ErrConflict         = errors.New("already exists")
)

// StorageError reports a record store failure: unavailable database, aborted
// transaction, cancelled context.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// InvalidInputf builds an ErrInvalidInput with a caller-facing reason.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
