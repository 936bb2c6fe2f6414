package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPauseBatchTimerCommandIsNotConstructed = errors.New(
	"PauseBatchTimerCommand must be created via NewPauseBatchTimerCommand constructor",
)

// PauseBatchTimerCommand represents a member's request to pause a batch's
// shared clock for every observer at once.
type PauseBatchTimerCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewPauseBatchTimerCommand creates a command to pause a shared timer.
func NewPauseBatchTimerCommand(batchID, userID kernel.UUID) (PauseBatchTimerCommand, error) {
	command := PauseBatchTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setUserID(userID),
	); err != nil {
		return PauseBatchTimerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PauseBatchTimerCommand) Validate() error {
	return c.guard.Validate(ErrPauseBatchTimerCommandIsNotConstructed)
}

// BatchID returns the batch whose clock is being paused.
func (c PauseBatchTimerCommand) BatchID() kernel.UUID {
	return c.batchID
}

// UserID returns the member requesting the pause.
func (c PauseBatchTimerCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *PauseBatchTimerCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *PauseBatchTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
