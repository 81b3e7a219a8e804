// Package liberr defines the error taxonomy shared by both services and its
// mapping onto HTTP status codes. Handlers translate these into structured
// {"error": message} responses; anything outside the taxonomy becomes a
// generic 500 so internal detail never reaches a client.
package liberr

import (
	"errors"
	"fmt"
	"net/http"
)

// LibraryError is the base error of the taxonomy. It carries the HTTP status
// the boundary should respond with.
type LibraryError struct {
	Message string
	Status  int
}

func (e *LibraryError) Error() string {
	return e.Message
}

// StatusCode reports the HTTP status the error maps to.
func (e *LibraryError) StatusCode() int {
	return e.Status
}

// New builds an ad-hoc LibraryError with an explicit status code.
func New(message string, status int) *LibraryError {
	return &LibraryError{Message: message, Status: status}
}

// ValidationError covers malformed, missing or out-of-range input.
type ValidationError struct {
	LibraryError
}

func NewValidation(message string) *ValidationError {
	return &ValidationError{LibraryError{Message: message, Status: http.StatusBadRequest}}
}

// ResourceNotFoundError covers lookups of absent entities.
type ResourceNotFoundError struct {
	LibraryError
	Kind string
	ID   any
}

func NewNotFound(kind string, id any) *ResourceNotFoundError {
	return &ResourceNotFoundError{
		LibraryError: LibraryError{
			Message: fmt.Sprintf("%s %v not found", kind, id),
			Status:  http.StatusNotFound,
		},
		Kind: kind,
		ID:   id,
	}
}

// BookNotAvailableError covers a borrow attempt on an already borrowed book.
type BookNotAvailableError struct {
	LibraryError
	BookID int64
}

func NewBookNotAvailable(bookID int64) *BookNotAvailableError {
	return &BookNotAvailableError{
		LibraryError: LibraryError{
			Message: fmt.Sprintf("Book %d is not available", bookID),
			Status:  http.StatusBadRequest,
		},
		BookID: bookID,
	}
}

// statusCoder is implemented by every error in the taxonomy.
type statusCoder interface {
	StatusCode() int
}

// IsLibraryError reports whether err belongs to the taxonomy.
func IsLibraryError(err error) bool {
	var sc statusCoder
	return errors.As(err, &sc)
}

// HTTPStatus resolves the status code for err. Errors outside the taxonomy
// map to 500.
func HTTPStatus(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to put in a response body. Errors
// outside the taxonomy get a generic message.
func PublicMessage(err error) string {
	if IsLibraryError(err) {
		return err.Error()
	}
	return "Internal server error"
}

// Normalize keeps taxonomy errors as-is and converts anything else into a
// generic validation failure. The borrow workflow uses this as its exception
// translation boundary.
func Normalize(err error) error {
	if err == nil || IsLibraryError(err) {
		return err
	}
	return NewValidation("An unexpected error occurred")
}
