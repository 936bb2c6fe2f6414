package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrStopBatchTimerCommandIsNotConstructed = errors.New(
	"StopBatchTimerCommand must be created via NewStopBatchTimerCommand constructor",
)

// StopBatchTimerCommand represents a member's request to stop a batch's
// shared clock for good, finalizing every member's work record.
//
// Example:
//
//	cmd, err := NewStopBatchTimerCommand(batchID, userID, 8, 96)
//	if err != nil {
//	    return fmt.Errorf("invalid stop request: %w", err)
//	}
//
//	resp, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to stop batch timer: %w", err)
//	}
//	fmt.Printf("Logged %d minutes for %d workers", resp.DurationMinutes, resp.MembersLogged)
type StopBatchTimerCommand struct { //nolint:recvcheck //using for validation
	batchID         kernel.UUID
	userID          kernel.UUID
	ordersProcessed int
	itemsProcessed  int

	guard guard.ConstructorGuard
}

// StopBatchTimerResponse reports the finalized shared run.
type StopBatchTimerResponse struct {
	DurationMinutes int
	MembersLogged   int
}

// NewStopBatchTimerCommand creates a command to stop a shared timer.
// The throughput counts describe what the whole run produced; they are
// recorded on the stopping member's ledger entry.
func NewStopBatchTimerCommand(
	batchID, userID kernel.UUID,
	ordersProcessed, itemsProcessed int,
) (StopBatchTimerCommand, error) {
	command := StopBatchTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setUserID(userID),
		command.setCounts(ordersProcessed, itemsProcessed),
	); err != nil {
		return StopBatchTimerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StopBatchTimerCommand) Validate() error {
	return c.guard.Validate(ErrStopBatchTimerCommandIsNotConstructed)
}

// BatchID returns the batch whose clock is being stopped.
func (c StopBatchTimerCommand) BatchID() kernel.UUID {
	return c.batchID
}

// UserID returns the member stopping the clock.
func (c StopBatchTimerCommand) UserID() kernel.UUID {
	return c.userID
}

// OrdersProcessed returns the orders completed during the shared run.
func (c StopBatchTimerCommand) OrdersProcessed() int {
	return c.ordersProcessed
}

// ItemsProcessed returns the items completed during the shared run.
func (c StopBatchTimerCommand) ItemsProcessed() int {
	return c.itemsProcessed
}

func (c *StopBatchTimerCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *StopBatchTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *StopBatchTimerCommand) setCounts(ordersProcessed, itemsProcessed int) error {
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
