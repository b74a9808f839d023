package errors

import "fmt"

// ErrorCode classifies engine errors.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrPrecondition   ErrorCode = "PRECONDITION"    // 400 (guarded no-op at op entry)
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrPersistence    ErrorCode = "PERSISTENCE"     // 502 (remote record store failed)
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// Error is a structured error with code, HTTP status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any

	// Cause is the wrapped underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewInvalidRequest creates a 400 error for invalid parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewPrecondition creates a 400 error for a failed operation precondition
// (e.g. merging a folder that no longer exists).
func NewPrecondition(msg string) *Error {
	return &Error{
		Code:    ErrPrecondition,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing record.
func NewNotFound(collection, id string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", collection, id),
		Details: map[string]any{"collection": collection, "id": id},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *Error {
	return &Error{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewPersistence creates a 502 error wrapping a failed persistence call.
// Persistence failures abort forward progress but preserve user state.
func NewPersistence(op string, cause error) *Error {
	return &Error{
		Code:    ErrPersistence,
		Status:  502,
		Message: fmt.Sprintf("persistence %s failed", op),
		Details: map[string]any{"op": op},
		Cause:   cause,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		Cause:   err,
	}
}

// Is checks if an error is an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
