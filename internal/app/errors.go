package app

import "errors"

var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("application already started")
)

// InputError reports a failed read from the backend.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return "read input: " + e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}
