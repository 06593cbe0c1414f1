// Package serr carries an HTTP status and a client-safe message with an error.
package serr

import (
	"errors"
	"net/http"
)

type ServiceError struct {
	Err        error
	StatusCode int
	Msg        string
	// Fields holds per-field validation messages keyed by JSON name.
	Fields map[string]string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func New(status int, msg string) *ServiceError {
	return &ServiceError{StatusCode: status, Msg: msg}
}

func Wrap(err error, status int, msg string) *ServiceError {
	return &ServiceError{Err: err, StatusCode: status, Msg: msg}
}

func BadRequest(msg string) *ServiceError { return New(http.StatusBadRequest, msg) }

func Unauthorized(msg string) *ServiceError { return New(http.StatusUnauthorized, msg) }

func Forbidden(msg string) *ServiceError { return New(http.StatusForbidden, msg) }

func NotFound(msg string) *ServiceError { return New(http.StatusNotFound, msg) }

func Conflict(msg string) *ServiceError { return New(http.StatusConflict, msg) }

// InsufficientCredits uses 411, the status existing clients key on.
func InsufficientCredits(err error) *ServiceError {
	return Wrap(err, http.StatusLengthRequired, "Not enough credits")
}

func Upstream(err error, msg string) *ServiceError {
	return Wrap(err, http.StatusBadGateway, msg)
}

func Validation(fields map[string]string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Msg: "Validation failed", Fields: fields}
}

// StatusOf returns the carried status, or 500 for plain errors.
func StatusOf(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return http.StatusInternalServerError
}
