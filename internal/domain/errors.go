package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("not signed in")
	ErrWrite           = errors.New("backend rejected write")
	ErrUpload          = errors.New("image upload failed")
	ErrNotFound        = errors.New("not found")
)

// ValidationError is a local, field-level failure. It never reaches the backend.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
