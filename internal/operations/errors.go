package operations

import "errors"

var (
	ErrBusy       = errors.New("another operation is running")
	ErrNoJob      = errors.New("no job to start")
	ErrInvalidJob = errors.New("invalid job")
	ErrStopped    = errors.New("runner stopped")
	ErrPanic      = errors.New("operation panicked")
)

// StepError reports which step of a composite operation failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}
