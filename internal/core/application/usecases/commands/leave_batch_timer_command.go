package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrLeaveBatchTimerCommandIsNotConstructed = errors.New(
	"LeaveBatchTimerCommand must be created via NewLeaveBatchTimerCommand constructor",
)

// LeaveBatchTimerCommand represents a request to leave a batch's shared
// timer. Leaving only removes membership; the clock keeps running for the
// remaining workers and stopping it always takes an explicit stop call.
type LeaveBatchTimerCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewLeaveBatchTimerCommand creates a command to leave a shared timer.
func NewLeaveBatchTimerCommand(batchID, userID kernel.UUID) (LeaveBatchTimerCommand, error) {
	command := LeaveBatchTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setUserID(userID),
	); err != nil {
		return LeaveBatchTimerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c LeaveBatchTimerCommand) Validate() error {
	return c.guard.Validate(ErrLeaveBatchTimerCommandIsNotConstructed)
}

// BatchID returns the batch whose timer is being left.
func (c LeaveBatchTimerCommand) BatchID() kernel.UUID {
	return c.batchID
}

// UserID returns the leaving worker.
func (c LeaveBatchTimerCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *LeaveBatchTimerCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *LeaveBatchTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
