package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrForbidden          = errors.New("forbidden")           // 403
	ErrOutOfStock         = errors.New("out of stock")        // 400
	ErrEmptyCart          = errors.New("cart is empty")       // 400
	ErrConflict           = errors.New("conflict")            // 409
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
)

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string        { return e.Msg }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// OutOfStockError names the book that blocked the operation.
type OutOfStockError struct {
	BookID uint
	Title  string
}

func (e *OutOfStockError) Error() string        { return fmt.Sprintf("Book %q is out of stock", e.Title) }
func (e *OutOfStockError) Is(target error) bool { return target == ErrOutOfStock }

// ConflictError reports which unique value is already taken.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string        { return e.Msg }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
