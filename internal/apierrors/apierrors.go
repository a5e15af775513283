// Package apierrors provides error values that carry the HTTP status
// an endpoint should answer with, so the interaction layer can report
// failures without importing any http handler code.
package apierrors

import (
	"errors"
	"net/http"
)

// APIStatus is implemented by errors that know their HTTP representation.
type APIStatus interface {
	Status() Status
}

type Status struct {
	Code    int
	Message string
	Details string
}

type StatusError struct {
	ErrStatus Status
}

var _ error = (*StatusError)(nil)
var _ APIStatus = (*StatusError)(nil)

func (e *StatusError) Error() string {
	if e.ErrStatus.Details != "" {
		return e.ErrStatus.Details
	}

	return e.ErrStatus.Message
}

func (e *StatusError) Status() Status {
	return e.ErrStatus
}

func NewBadRequest(details string) *StatusError {
	return newStatusError(http.StatusBadRequest, "request invalid", details)
}

func NewUnauthorized(details string) *StatusError {
	return newStatusError(http.StatusUnauthorized, "request unauthorized", details)
}

func NewForbidden(details string) *StatusError {
	return newStatusError(http.StatusForbidden, "request forbidden", details)
}

func NewNotFound(details string) *StatusError {
	return newStatusError(http.StatusNotFound, "resource not found", details)
}

func NewConflict(details string) *StatusError {
	return newStatusError(http.StatusConflict, "request conflict", details)
}

func NewInternalServerError(details string) *StatusError {
	return newStatusError(http.StatusInternalServerError, "internal error", details)
}

func newStatusError(code int, message, details string) *StatusError {
	return &StatusError{
		ErrStatus: Status{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// AsAPIStatus returns the status carried by err, or nil if err carries none.
func AsAPIStatus(err error) APIStatus {
	var status APIStatus
	if errors.As(err, &status) {
		return status
	}

	return nil
}

func IsBadRequestError(err error) bool {
	return codeForError(err) == http.StatusBadRequest
}

func IsUnauthorizedError(err error) bool {
	return codeForError(err) == http.StatusUnauthorized
}

func IsForbiddenError(err error) bool {
	return codeForError(err) == http.StatusForbidden
}

func IsNotFoundError(err error) bool {
	return codeForError(err) == http.StatusNotFound
}

func IsConflictError(err error) bool {
	return codeForError(err) == http.StatusConflict
}

func IsInternalServerError(err error) bool {
	return codeForError(err) == http.StatusInternalServerError
}

func codeForError(err error) int {
	if status := AsAPIStatus(err); status != nil {
		return status.Status().Code
	}

	return 0
}
