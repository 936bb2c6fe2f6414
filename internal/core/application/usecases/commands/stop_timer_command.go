package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrStopTimerCommandIsNotConstructed = errors.New(
	"StopTimerCommand must be created via NewStopTimerCommand constructor",
)

// StopTimerCommand represents a request to finalize a user's session on a
// stage, recording throughput counts on its single ledger entry.
//
// Example:
//
//	cmd, err := NewStopTimerCommand(userID, stageID, 3, 12, false)
//	if err != nil {
//	    return fmt.Errorf("invalid stop request: %w", err)
//	}
//
//	handler := NewStopTimerCommandHandler(uowFactory, locks)
//	resp, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to stop timer: %w", err)
//	}
//	fmt.Printf("Logged %d minutes", resp.DurationMinutes)
type StopTimerCommand struct { //nolint:recvcheck //using for validation
	userID          kernel.UUID
	stageID         kernel.UUID
	ordersProcessed int
	itemsProcessed  int
	isManual        bool

	guard guard.ConstructorGuard
}

// StopTimerResponse reports the finalized session's logged duration.
type StopTimerResponse struct {
	DurationMinutes int
}

// NewStopTimerCommand creates a command to stop an individual session.
// Throughput counts must not be negative; isManual marks hand-corrected
// entries in the ledger.
func NewStopTimerCommand(
	userID, stageID kernel.UUID,
	ordersProcessed, itemsProcessed int,
	isManual bool,
) (StopTimerCommand, error) {
	command := StopTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setStageID(stageID),
		command.setCounts(ordersProcessed, itemsProcessed),
	); err != nil {
		return StopTimerCommand{}, err
	}

	command.isManual = isManual
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StopTimerCommand) Validate() error {
	return c.guard.Validate(ErrStopTimerCommandIsNotConstructed)
}

// UserID returns the user stopping their session.
func (c StopTimerCommand) UserID() kernel.UUID {
	return c.userID
}

// StageID returns the stage the session is expected to cover.
func (c StopTimerCommand) StageID() kernel.UUID {
	return c.stageID
}

// OrdersProcessed returns the orders completed during the session.
func (c StopTimerCommand) OrdersProcessed() int {
	return c.ordersProcessed
}

// ItemsProcessed returns the items completed during the session.
func (c StopTimerCommand) ItemsProcessed() int {
	return c.itemsProcessed
}

// IsManual reports whether the ledger entry is a manual correction.
func (c StopTimerCommand) IsManual() bool {
	return c.isManual
}

func (c *StopTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *StopTimerCommand) setStageID(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}

	c.stageID = stageID
	return nil
}

func (c *StopTimerCommand) setCounts(ordersProcessed, itemsProcessed int) error {
	if ordersProcessed < 0 {
		return errs.NewValueIsInvalidError("ordersProcessed")
	}
	if itemsProcessed < 0 {
		return errs.NewValueIsInvalidError("itemsProcessed")
	}

	c.ordersProcessed = ordersProcessed
	c.itemsProcessed = itemsProcessed
	return nil
}
