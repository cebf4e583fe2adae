package services

import (
	"errors"
	"fmt"

	"github.com/sahilchouksey/studyflow/repository"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// invalid wraps ErrInvalidInput with a client-facing detail
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// notFound maps a repository miss onto ErrNotFound with the resource name
func notFound(resource string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s not found", ErrNotFound, resource)
	}
	return err
}

// conflictOnDuplicate maps a unique constraint violation onto ErrConflict
func conflictOnDuplicate(message string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: %s", ErrConflict, message)
	}
	return err
}

// Detail returns the client-facing part of a service error
func Detail(err error) string {
	for _, sentinel := range []error{ErrNotFound, ErrInvalidInput, ErrForbidden, ErrConflict} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			prefix := sentinel.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}

// forbidden wraps ErrForbidden with a client-facing detail
func forbidden(message string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, message)
}
