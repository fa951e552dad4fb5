package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DateRangeError reports a stay whose check-out is not after its check-in.
type DateRangeError struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (e *DateRangeError) Error() string {
	return "Check-out date must be after check-in date."
}

// NotFoundError names the kind of record that has no match. It matches ErrNotFound.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports a write rejected because of existing data.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
