package services

import (
	"errors"
	"fmt"
)

// ErrNotFound covers ids that do not exist or do not belong to the
// caller's restaurant scope. It is never treated as "create new".
var ErrNotFound = errors.New("record not found")

// ValidationError rejects a request before anything touches the
// database.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// SlotConflictError describes the booking the requested window collides
// with. The new booking is never persisted when this is returned.
type SlotConflictError struct {
	TableID      uint
	Date         string
	FromTime     string
	ToTime       string
	ExistingFrom string
	ExistingTo   string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf(
		"table %d is already reserved on %s between %s and %s, please choose a different time",
		e.TableID, e.Date, e.ExistingFrom, e.ExistingTo)
}
