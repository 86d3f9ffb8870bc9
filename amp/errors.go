package amp

import (
	"errors"
	"fmt"
)

// SessionStateError indicates an operation was requested in a state that
// does not allow it. No transfer was attempted.
type SessionStateError struct {
	Operation string
	State     State
	Want      State
}

func (e *SessionStateError) Error() string {
	return fmt.Sprintf("%s: session is %s, must be %s", e.Operation, e.State, e.Want)
}

// IsSessionStateError returns true if err is or wraps a SessionStateError.
func IsSessionStateError(err error) bool {
	var se *SessionStateError
	return errors.As(err, &se)
}
