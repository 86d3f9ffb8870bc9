package amp

import (
	"fmt"
	"testing"
)

func TestSessionStateError(t *testing.T) {
	err := &SessionStateError{Operation: "send amp", State: StateConnected, Want: StateReady}

	want := "send amp: session is connected, must be ready"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := fmt.Errorf("preset: %w", err)
	if !IsSessionStateError(wrapped) {
		t.Error("IsSessionStateError(wrapped) = false")
	}
	if IsSessionStateError(fmt.Errorf("other")) {
		t.Error("IsSessionStateError(other) = true")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "disconnected"},
		{StateConnected, "connected"},
		{StateReady, "ready"},
		{State(9), "state(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
