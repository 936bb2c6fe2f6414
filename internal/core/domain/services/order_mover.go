package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"
)

// OrderMover is the domain service that moves orders through the pipeline.
// It is the single place where transition gating lives: every stage change,
// whether a step to the next stage, a manual re-route, or shipping, passes
// through the same checks before the order aggregate records the move.
//
// Gating rules:
//   - Outside the entry stage, the acting user must hold a running or paused
//     individual session covering the order's current stage
//   - Leaving a worksheet-gated stage (and shipping) requires every line
//     item marked complete
//   - No check passes without the order being mutated; a failed gate leaves
//     the order exactly as it was
//
// The mover holds no state and performs no I/O; the command handlers load
// the order and the caller's active session and hand them in.
//
// Example usage:
//
//	mover := NewOrderMover()
//	target, err := mover.MoveNext(graph, o, userID, session)
//	if errors.Is(err, errs.ErrTimerRequired) {
//	    // Caller has no active timer on the order's stage
//	    return
//	}
//	// o now sits on target
type OrderMover struct{}

// NewOrderMover creates a new OrderMover instance.
//
// Returns:
//   - OrderMover: A new instance ready to move orders
func NewOrderMover() OrderMover {
	return OrderMover{}
}

// MoveNext advances the order one step along the pipeline.
//
// Parameters:
//   - g: The pipeline the order moves through
//   - o: The order to advance (must be valid)
//   - userID: The acting user (for gating errors)
//   - session: The acting user's active individual session, nil if none
//
// Returns:
//   - *stage.Stage: The stage the order now sits on
//   - error: InvalidStateError at the terminal stage, TimerRequiredError or
//     WorksheetIncompleteError on a failed gate
func (m OrderMover) MoveNext(g *stage.Graph, o *order.Order, userID kernel.UUID, session *timer.Session) (*stage.Stage, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	target, err := g.Next(o.CurrentStage())
	if err != nil {
		return nil, err
	}

	return m.moveTo(g, o, target, userID, session)
}

// MoveTo jumps the order onto an arbitrary stage, bypassing the next-only
// rule. Used for manual re-routing; the timer and worksheet gates still
// apply. A shipped order cannot be re-routed.
//
// Parameters:
//   - g: The pipeline the order moves through
//   - o: The order to re-route (must be valid)
//   - targetStageID: The stage to jump onto
//   - userID: The acting user (for gating errors)
//   - session: The acting user's active individual session, nil if none
//
// Returns:
//   - *stage.Stage: The stage the order now sits on
//   - error: ObjectNotFoundError for an unknown target, InvalidStateError
//     for a shipped order, or a gating error
func (m OrderMover) MoveTo(g *stage.Graph, o *order.Order, targetStageID kernel.UUID, userID kernel.UUID, session *timer.Session) (*stage.Stage, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	atTerminal, err := g.IsTerminal(o.CurrentStage())
	if err != nil {
		return nil, err
	}
	if atTerminal {
		return nil, errs.NewInvalidStateErrorWithCause("order", fmt.Errorf("order %s is already shipped", o.Number()))
	}

	target, err := g.StageByID(targetStageID)
	if err != nil {
		return nil, err
	}

	return m.moveTo(g, o, target, userID, session)
}

// MoveForBatch applies a batch advancement to one member order. The caller
// has already proven its authority at the batch level (ledger membership
// plus a running or paused shared clock), so the individual session gate is
// skipped; the worksheet gate and the shipped-order rule still hold.
//
// Parameters:
//   - g: The pipeline the order moves through
//   - o: The member order to move (must be valid)
//   - target: The stage the batch is advancing onto
//
// Returns:
//   - error: InvalidStateError for a shipped member, or
//     WorksheetIncompleteError on a failed worksheet gate
func (m OrderMover) MoveForBatch(g *stage.Graph, o *order.Order, target *stage.Stage) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}

	atTerminal, err := g.IsTerminal(o.CurrentStage())
	if err != nil {
		return err
	}
	if atTerminal {
		return errs.NewInvalidStateErrorWithCause("order", fmt.Errorf("order %s is already shipped", o.Number()))
	}

	current, err := g.StageByID(o.CurrentStage())
	if err != nil {
		return err
	}

	if worksheetGated(current, target) && !o.WorksheetComplete() {
		return errs.NewWorksheetIncompleteError(o.ID().String(), o.IncompleteItemCount())
	}

	return o.AssignStage(target.ID())
}

// Ship moves the order onto the terminal stage. Shipping is allowed only
// from the stage directly before it and is always worksheet-gated.
//
// Parameters:
//   - g: The pipeline the order moves through
//   - o: The order to ship (must be valid)
//   - userID: The acting user (for gating errors)
//   - session: The acting user's active individual session, nil if none
//
// Returns:
//   - *stage.Stage: The terminal stage the order now sits on
//   - error: InvalidStateError when the order is not one step away from
//     the terminal stage, or a gating error
func (m OrderMover) Ship(g *stage.Graph, o *order.Order, userID kernel.UUID, session *timer.Session) (*stage.Stage, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	next, err := g.Next(o.CurrentStage())
	if err != nil {
		return nil, err
	}
	if !next.IsTerminal() {
		return nil, errs.NewInvalidStateErrorWithCause("order", fmt.Errorf("order %s is not at the final stage before shipping", o.Number()))
	}

	return m.moveTo(g, o, next, userID, session)
}

// EnsureWorkAllowed gates worksheet writes. Outside the entry stage the
// acting user must hold a covering session; at the entry stage anyone may
// edit the worksheet.
//
// Returns:
//   - error: TimerRequiredError when no covering session exists
func (m OrderMover) EnsureWorkAllowed(g *stage.Graph, o *order.Order, userID kernel.UUID, session *timer.Session) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}

	current, err := g.StageByID(o.CurrentStage())
	if err != nil {
		return err
	}

	if !current.IsEntry() && !hasCoverage(session, current.ID()) {
		return errs.NewTimerRequiredError(userID.String(), current.ID().String())
	}
	return nil
}

// DeductionRequired reports whether a committed transition triggers the
// inventory deduction: leaving the entry stage into the pipeline, or
// arriving at the terminal stage (shipping always deducts).
func (OrderMover) DeductionRequired(from, to *stage.Stage) bool {
	return (from.IsEntry() && !to.IsEntry()) || to.IsTerminal()
}

// moveTo runs the gates against the order's current stage and records the
// transition.
func (m OrderMover) moveTo(g *stage.Graph, o *order.Order, target *stage.Stage, userID kernel.UUID, session *timer.Session) (*stage.Stage, error) {
	current, err := g.StageByID(o.CurrentStage())
	if err != nil {
		return nil, err
	}

	if !current.IsEntry() && !hasCoverage(session, current.ID()) {
		return nil, errs.NewTimerRequiredError(userID.String(), current.ID().String())
	}

	if worksheetGated(current, target) && !o.WorksheetComplete() {
		return nil, errs.NewWorksheetIncompleteError(o.ID().String(), o.IncompleteItemCount())
	}

	if err := o.AssignStage(target.ID()); err != nil {
		return nil, err
	}

	return target, nil
}

// worksheetGated reports whether a transition requires a complete
// worksheet: leaving a worksheet-gated stage, or any arrival at the
// terminal stage. Shipping is worksheet-gated no matter which route the
// order takes onto the terminal stage.
func worksheetGated(current, target *stage.Stage) bool {
	return current.RequiresWorksheet() || target.IsTerminal()
}

// hasCoverage reports whether the session qualifies as active work on the
// given stage.
func hasCoverage(session *timer.Session, stageID kernel.UUID) bool {
	return session != nil && session.CoversStage(stageID)
}
