package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors for use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrIntegrity        = errors.New("integrity violation")
	ErrUnauthorized     = errors.New("unauthorized")
)

type (
	// NotFoundError indicates an identifier did not resolve to a record
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates malformed or missing required input
	ValidationError struct {
		Message string
	}

	// InvalidOperationError indicates an operation that would violate a tree
	// invariant (cycle, self-parenting)
	InvalidOperationError struct {
		Message string
	}

	// IntegrityError indicates the store itself violated an invariant.
	// It is fatal: callers must propagate it, never recover locally.
	IntegrityError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string         { return e.Message }
func (e *ValidationError) Error() string       { return e.Message }
func (e *InvalidOperationError) Error() string { return e.Message }
func (e *IntegrityError) Error() string        { return e.Message }
func (e *UnauthorizedError) Error() string     { return e.Message }

func (e *NotFoundError) StatusCode() int         { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *InvalidOperationError) StatusCode() int { return http.StatusBadRequest }
func (e *IntegrityError) StatusCode() int        { return http.StatusInternalServerError }
func (e *UnauthorizedError) StatusCode() int     { return http.StatusUnauthorized }

// Is implementations let typed errors match their sentinels via errors.Is()
func (e *NotFoundError) Is(target error) bool         { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool       { return target == ErrValidation }
func (e *InvalidOperationError) Is(target error) bool { return target == ErrInvalidOperation }
func (e *IntegrityError) Is(target error) bool        { return target == ErrIntegrity }
func (e *UnauthorizedError) Is(target error) bool     { return target == ErrUnauthorized }

// Kind returns the wire-level error kind for a domain error.
// Every user-visible error carries a kind alongside its message.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrNotFound):
		return "NotFoundError"
	case errors.Is(err, ErrInvalidOperation):
		return "InvalidOperationError"
	case errors.Is(err, ErrIntegrity):
		return "IntegrityError"
	case errors.Is(err, ErrUnauthorized):
		return "UnauthorizedError"
	default:
		return "InternalError"
	}
}
