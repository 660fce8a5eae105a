package compare

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when a batch stops early because its context was cancelled.
var ErrCancelled = errors.New("comparison cancelled")

// TableError tags a failure with the table it happened on.
type TableError struct {
	Table string
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %s: %v", e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

func cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
