package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrResumeBatchTimerCommandIsNotConstructed = errors.New(
	"ResumeBatchTimerCommand must be created via NewResumeBatchTimerCommand constructor",
)

// ResumeBatchTimerCommand represents a member's request to resume a
// batch's paused shared clock.
type ResumeBatchTimerCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeBatchTimerCommand creates a command to resume a shared timer.
func NewResumeBatchTimerCommand(batchID, userID kernel.UUID) (ResumeBatchTimerCommand, error) {
	command := ResumeBatchTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setUserID(userID),
	); err != nil {
		return ResumeBatchTimerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeBatchTimerCommand) Validate() error {
	return c.guard.Validate(ErrResumeBatchTimerCommandIsNotConstructed)
}

// BatchID returns the batch whose clock is being resumed.
func (c ResumeBatchTimerCommand) BatchID() kernel.UUID {
	return c.batchID
}

// UserID returns the member requesting the resume.
func (c ResumeBatchTimerCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *ResumeBatchTimerCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *ResumeBatchTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
