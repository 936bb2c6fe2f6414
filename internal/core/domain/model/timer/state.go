package timer

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// State represents the lifecycle state of a timer clock.
// It implements a state machine with defined transitions shared by individual
// sessions and shared batch timers.
//
// State transitions:
//
//	Idle ──> Running ──> Stopped
//	            │  ▲
//	            ▼  │
//	          Paused ──> Stopped
//
// Stopped is terminal and irreversible. State is a value object that
// validates transitions and provides string representations for persistence
// and display.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Idle is the initial state of a clock that has never been started.
	// Shared batch timers sit Idle until the first worker joins.
	Idle

	// Running indicates the clock is accumulating elapsed time.
	Running

	// Paused indicates the clock is frozen with its elapsed time banked.
	Paused

	// Stopped indicates the clock has been finalized.
	// This is a terminal state with no further transitions allowed.
	Stopped
)

// getStateStrings returns a map of State values to their string representations.
func getStateStrings() map[State]string {
	return map[State]string{
		Unknown: "Unknown",
		Idle:    "Idle",
		Running: "Running",
		Paused:  "Paused",
		Stopped: "Stopped",
	}
}

// getValidStateStrings returns a map of only valid State values.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Idle:    "Idle",
		Running: "Running",
		Paused:  "Paused",
		Stopped: "Stopped",
	}
}

// StateFromString parses a State from its string representation. It is used
// when reconstructing clocks from persistence.
func StateFromString(s string) (State, error) {
	for state, str := range getValidStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%q is not a valid state", s))
}

// Validate checks if the State value is valid.
//
// Valid states are: Idle, Running, Paused, Stopped.
// Unknown (0) and any other values are invalid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
// It implements the fmt.Stringer interface and is safe to call on any State
// value, including invalid ones.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether the clock is live, meaning Running or Paused.
// A user's active session and a batch's active timer are both defined by
// this predicate.
func (s State) IsActive() bool {
	return s == Running || s == Paused
}

// Start transitions the state to Running.
//
// Valid transitions:
//   - Idle -> Running
//
// Returns:
//   - (Running, nil) on valid transition
//   - (0, error) if transition is not allowed from current state
func (s State) Start() (State, error) {
	if s != Idle {
		return 0, errs.NewInvalidStateErrorWithCause(
			"timer",
			fmt.Errorf("%s is not a valid state to start", s.String()),
		)
	}
	return Running, nil
}

// Pause transitions the state to Paused.
//
// Valid transitions:
//   - Running -> Paused
//
// Returns:
//   - (Paused, nil) on valid transition
//   - (0, error) if transition is not allowed from current state
func (s State) Pause() (State, error) {
	if s != Running {
		return 0, errs.NewInvalidStateErrorWithCause(
			"timer",
			fmt.Errorf("%s is not a valid state to pause", s.String()),
		)
	}
	return Paused, nil
}

// Resume transitions the state back to Running.
//
// Valid transitions:
//   - Paused -> Running
//
// Returns:
//   - (Running, nil) on valid transition
//   - (0, error) if transition is not allowed from current state
func (s State) Resume() (State, error) {
	if s != Paused {
		return 0, errs.NewInvalidStateErrorWithCause(
			"timer",
			fmt.Errorf("%s is not a valid state to resume", s.String()),
		)
	}
	return Running, nil
}

// Stop transitions the state to Stopped.
//
// Valid transitions:
//   - Running -> Stopped
//   - Paused -> Stopped
//
// Stopped is terminal: stopping an already-stopped timer is rejected, which
// is what guarantees a session logs at most once.
//
// Returns:
//   - (Stopped, nil) on valid transition
//   - (0, error) if transition is not allowed from current state
func (s State) Stop() (State, error) {
	if !s.IsActive() {
		return 0, errs.NewInvalidStateErrorWithCause(
			"timer",
			fmt.Errorf("%s is not a valid state to stop", s.String()),
		)
	}
	return Stopped, nil
}
