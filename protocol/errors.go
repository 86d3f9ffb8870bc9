package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a value the protocol does not accept: a chain slot
// outside 0-7, a preset slot outside 0-99, or a byte that is not a known
// amp, effect or cabinet code.
type ValidationError struct {
	// Field names what was being validated (e.g. "slot id", "amp code")
	Field string

	// Value is the rejected value
	Value int

	// Reason describes the accepted domain
	Reason string
}

func (e *ValidationError) Error() string {
	value := fmt.Sprintf("%d", e.Value)
	if strings.HasSuffix(e.Field, "code") {
		value = fmt.Sprintf("0x%02X", e.Value)
	}
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %s", e.Field, value)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Field, value, e.Reason)
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
