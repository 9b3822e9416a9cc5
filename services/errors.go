package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Controllers map these onto HTTP
// status codes; anything unwrapped is a 500.
var (
	// ErrNotFound: a referenced entity is absent (404)
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate: a uniqueness rule was violated (409)
	ErrDuplicate = errors.New("duplicate resource")
	// ErrInvalidState: the entities exist but their state forbids the
	// operation, e.g. marking attendance for an inactive student (409)
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation marks semantically invalid input (400).
	ErrValidation = errors.New("validation failed")
)

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func duplicatef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrDuplicate)...)
}

func invalidStatef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidState)...)
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
