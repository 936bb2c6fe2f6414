// Package timer provides the work-timer ledger domain model. It implements
// the clock state machine shared by individual sessions and shared batch
// timers, and the immutable log entries reports are computed from.
//
// The package includes:
//   - State: The Idle -> Running -> Paused -> Running -> Stopped state machine
//   - Clock: The time-keeping value object with derived elapsed time
//   - Session: An individual per-user work timer, the aggregate root
//   - Log: One finalized, append-only ledger entry
//   - BatchMember: A worker's membership of a shared batch timer
//
// Key business rules:
//   - Elapsed time is always derived at read time, never ticked into a counter
//   - The banked duration is monotonically non-decreasing across pause/resume
//   - Stopped is terminal; a session emits exactly one log entry, ever
//   - Batch membership belongs to the ledger; batches never store worker lists
//
// All time-dependent operations take an explicit now so the model stays pure
// and fully testable.
package timer
