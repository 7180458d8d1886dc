package hosting

import (
	"errors"
	"fmt"
)

var (
	ErrCreateFailed        = errors.New("failed to create hosted repository")
	ErrUnsupportedProvider = errors.New("unsupported hosting provider")
	ErrInvalidCloneURL     = errors.New("invalid clone url")
)

// APIError is returned when a provider answers with a status other than 200 or 201.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s: status %d: %s", ErrCreateFailed, e.Provider, e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrCreateFailed
}
