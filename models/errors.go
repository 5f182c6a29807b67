package models

import "fmt"

// NotFoundError reports a referenced entity that does not exist. Entity is
// the kind of thing looked up, ID the identity that missed.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: fmt.Sprintf("%v", id)}
}

// ValidationError reports structurally invalid input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// ConflictError reports an entity in a state that forbids the operation.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Msg: msg}
}

// AccessDeniedError reports a user requesting a resource they do not own.
type AccessDeniedError struct {
	Msg string
}

func (e *AccessDeniedError) Error() string {
	return e.Msg
}

func NewAccessDeniedError(msg string) *AccessDeniedError {
	return &AccessDeniedError{Msg: msg}
}
