// Package apperrors defines the application's error taxonomy and the single
// HTTP boundary that translates error kinds into status codes and response
// bodies. Domain code returns tagged *Error values; nothing below the Fiber
// error handler decides HTTP statuses.
package apperrors

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an application error independent of transport.
type Kind int

const (
	// KindValidation covers malformed input and failed field validation.
	KindValidation Kind = iota
	// KindNotFound covers absent or soft-deleted entities.
	KindNotFound
	// KindReferentialInvalid covers references to missing or inactive rows,
	// e.g. creating a product under an inactive category.
	KindReferentialInvalid
	// KindUnauthorized is reserved; no current route produces it.
	KindUnauthorized
	// KindInternal covers everything else.
	KindInternal
)

// Error is a tagged application error.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages, keyed by field name.
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindReferentialInvalid:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// Validation builds a 400 error carrying per-field messages.
func Validation(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NotFoundf builds a 404 error with a formatted message.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ReferentialInvalid builds a 400 error for a missing or inactive reference.
func ReferentialInvalid(message string) *Error {
	return &Error{Kind: KindReferentialInvalid, Message: message}
}

// errorResponse is the JSON body shape for all error responses.
type errorResponse struct {
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ErrorHandler is the Fiber error handler installed at app construction. It
// is the only place errors become HTTP responses. Untagged errors are logged
// and rendered as a generic 500 whose details field carries the error text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		body := errorResponse{Message: appErr.Message, Errors: appErr.Fields}
		if appErr.Kind == KindInternal {
			log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
			body.Details = appErr.Error()
		}
		return c.Status(appErr.StatusCode()).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(errorResponse{Message: fiberErr.Message})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
		Message: "An error occurred while processing your request.",
		Details: err.Error(),
	})
}
