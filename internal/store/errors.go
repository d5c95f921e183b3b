package store

import "fmt"

// ValidationError reports a missing or malformed field on a request.
// The operation is aborted and no state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferenceError reports a referenced id (owner, assignee, project,
// task, user) that does not resolve to a known entity.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s id %q", e.Entity, e.ID)
}

// NotFoundError reports an update or delete targeting an unknown id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ParseError reports a malformed snapshot document on import. State is
// left untouched when it is returned.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed snapshot: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
