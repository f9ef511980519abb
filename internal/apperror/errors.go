package apperror

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups that resolved to no row. Handlers map it to 404.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with a client facing message.
func NotFound(format string, args ...any) error {
	return &notFoundError{msg: fmt.Sprintf(format, args...)}
}

type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }
func (e *notFoundError) Unwrap() error { return ErrNotFound }

// ValidationError is a business rule violation detected before any mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError is returned when a decrease exceeds the available stock.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return &ValidationError{Message: e.Error()}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidationMessage returns the message of the first ValidationError in the chain.
func ValidationMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}

func IsInsufficientStock(err error) bool {
	var se *InsufficientStockError
	return errors.As(err, &se)
}
