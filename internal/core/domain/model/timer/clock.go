package timer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrClockIsNotConstructed is returned when using an improperly initialized Clock.
var ErrClockIsNotConstructed = errors.New("Clock must be created via NewClock or RestoreClock")

// Clock is the shared time-keeping value object behind both individual timer
// sessions and shared batch timers. It is immutable: every transition returns
// a new Clock, and the owning aggregate replaces its copy on success.
//
// Elapsed time is always derived at read time, never ticked into a running
// counter, so concurrent readers can never observe drift. The only banked
// value is the accumulated duration of completed run segments:
//
//	elapsed(now) = accumulated + (now - startedAt)   while Running
//	elapsed(now) = accumulated                       otherwise
//
// StartedAt marks the beginning of the current run segment and is set only
// while Running; pausing banks the segment and clears it, resuming starts a
// fresh segment. Accumulated is therefore monotonically non-decreasing across
// pause/resume cycles.
type Clock struct {
	// state is the clock's position in the Idle/Running/Paused/Stopped machine
	state State
	// startedAt is the start of the current run segment, set only while Running
	startedAt *time.Time
	// accumulated is the banked duration of completed run segments
	accumulated time.Duration
	// guard ensures the clock was properly constructed
	guard guard.ConstructorGuard
}

// NewClock creates an Idle clock with nothing banked.
func NewClock() Clock {
	return Clock{
		state: Idle,
		guard: guard.NewConstructorGuard(),
	}
}

// RestoreClock reconstructs a Clock from persistent storage.
//
// Parameters:
//   - state: The persisted state
//   - startedAt: Start of the current run segment, required exactly when Running
//   - accumulated: Banked duration of completed run segments
//
// Returns:
//   - Clock: The restored clock
//   - error: Validation error if the fields are mutually inconsistent
func RestoreClock(state State, startedAt *time.Time, accumulated time.Duration) (Clock, error) {
	if err := state.Validate(); err != nil {
		return Clock{}, err
	}
	if (state == Running) != (startedAt != nil) {
		return Clock{}, errs.NewValueIsInvalidErrorWithCause(
			"clock is invalid",
			fmt.Errorf("startedAt must be set exactly when the clock is %s", Running),
		)
	}
	if accumulated < 0 {
		return Clock{}, errs.NewValueIsInvalidErrorWithCause(
			"clock is invalid",
			fmt.Errorf("accumulated duration %s is negative", accumulated),
		)
	}

	clock := Clock{
		state:       state,
		accumulated: accumulated,
		guard:       guard.NewConstructorGuard(),
	}
	if startedAt != nil {
		t := *startedAt
		clock.startedAt = &t
	}
	return clock, nil
}

// Validate checks if the Clock was properly constructed.
func (c Clock) Validate() error {
	return c.guard.Validate(ErrClockIsNotConstructed)
}

// State returns the clock's current state.
func (c Clock) State() State {
	return c.state
}

// StartedAt returns the start of the current run segment, or nil if the
// clock is not Running.
func (c Clock) StartedAt() *time.Time {
	if c.startedAt == nil {
		return nil
	}
	t := *c.startedAt
	return &t
}

// Accumulated returns the banked duration of completed run segments.
func (c Clock) Accumulated() time.Duration {
	return c.accumulated
}

// IsActive reports whether the clock is Running or Paused.
func (c Clock) IsActive() bool {
	return c.state.IsActive()
}

// Elapsed returns the total tracked duration as observed at now. While
// Running it includes the live current segment; otherwise it equals the
// banked value. A now earlier than the segment start contributes nothing,
// keeping elapsed monotonic under clock skew.
func (c Clock) Elapsed(now time.Time) time.Duration {
	if c.state == Running && c.startedAt != nil {
		if segment := now.Sub(*c.startedAt); segment > 0 {
			return c.accumulated + segment
		}
	}
	return c.accumulated
}

// Start transitions an Idle clock to Running with the segment starting at now.
//
// Returns:
//   - Clock: The running clock
//   - error: InvalidStateError if the clock is not Idle
func (c Clock) Start(now time.Time) (Clock, error) {
	newState, err := c.state.Start()
	if err != nil {
		return Clock{}, err
	}

	c.state = newState
	c.startedAt = &now
	return c, nil
}

// Pause banks the current run segment and freezes the clock.
//
// Returns:
//   - Clock: The paused clock with the segment banked
//   - error: InvalidStateError if the clock is not Running
func (c Clock) Pause(now time.Time) (Clock, error) {
	newState, err := c.state.Pause()
	if err != nil {
		return Clock{}, err
	}

	c.accumulated = c.Elapsed(now)
	c.state = newState
	c.startedAt = nil
	return c, nil
}

// Resume starts a fresh run segment on a Paused clock. The banked duration
// is untouched.
//
// Returns:
//   - Clock: The running clock
//   - error: InvalidStateError if the clock is not Paused
func (c Clock) Resume(now time.Time) (Clock, error) {
	newState, err := c.state.Resume()
	if err != nil {
		return Clock{}, err
	}

	c.state = newState
	c.startedAt = &now
	return c, nil
}

// Stop finalizes the clock from Running or Paused, banking any live segment.
// Stopped is terminal: stopping again fails, which protects against double
// logging.
//
// Returns:
//   - Clock: The stopped clock holding the final tracked duration
//   - error: InvalidStateError if the clock is neither Running nor Paused
func (c Clock) Stop(now time.Time) (Clock, error) {
	newState, err := c.state.Stop()
	if err != nil {
		return Clock{}, err
	}

	c.accumulated = c.Elapsed(now)
	c.state = newState
	c.startedAt = nil
	return c, nil
}

// WholeMinutes converts a duration to whole minutes, rounding to nearest.
// Ledger entries record durations at minute granularity.
func WholeMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
