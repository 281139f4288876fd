package wizard

import (
	"errors"
	"fmt"

	"hotel-ob/internal/api"
)

var (
	// ErrMissingParent is wrapped by PreconditionError.
	ErrMissingParent = errors.New("complete the previous step first")
	// ErrDispatchInFlight is returned when a session is already dispatching.
	ErrDispatchInFlight = errors.New("a step is already being saved")
	// ErrSessionNotFound is returned by session stores.
	ErrSessionNotFound = errors.New("wizard session not found")
)

// PreconditionError reports a step that needs an id produced by an earlier step.
type PreconditionError struct {
	Step    Step
	Missing string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s (%s missing)", e.Step, ErrMissingParent, e.Missing)
}

func (e *PreconditionError) Unwrap() error { return ErrMissingParent }

// StepError reports a rejected backend call that failed a step.
type StepError struct {
	Step Step
	Call string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("saving %s failed at %s: %v", e.Step, e.Call, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Level is the severity of a Notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a user-visible message produced while dispatching a step.
type Notice struct {
	Level   Level  `json:"level"`
	Step    Step   `json:"step"`
	Message string `json:"message"`
}

// reason extracts the message a user should see for err.
func reason(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
