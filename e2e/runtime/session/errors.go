package session

import (
	"fmt"
	"strings"

	"github.com/gravitational/trace"
)

// SessionNotInitializedError is returned when a worker uses a session
// before creating one
type SessionNotInitializedError struct {
	Key WorkerKey
}

func (e *SessionNotInitializedError) Error() string {
	return fmt.Sprintf("session is not initialized for worker %q, create and set one first", e.Key)
}

// SessionLaunchError is returned when the browser could not be started
type SessionLaunchError struct {
	Kind         Kind
	Capabilities Capabilities
	Err          error
}

func (e *SessionLaunchError) Error() string {
	return fmt.Sprintf("failed to launch %v with [%v]: %v",
		e.Kind, strings.Join(e.Capabilities.Flags(e.Kind), ", "), trace.UserMessage(e.Err))
}

func (e *SessionLaunchError) Unwrap() error {
	return e.Err
}

// IsSessionNotInitialized returns true if err is a SessionNotInitializedError
func IsSessionNotInitialized(err error) bool {
	_, ok := trace.Unwrap(err).(*SessionNotInitializedError)
	return ok
}

// IsSessionLaunch returns true if err is a SessionLaunchError
func IsSessionLaunch(err error) bool {
	_, ok := trace.Unwrap(err).(*SessionLaunchError)
	return ok
}
