package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrJoinBatchTimerCommandIsNotConstructed = errors.New(
	"JoinBatchTimerCommand must be created via NewJoinBatchTimerCommand constructor",
)

// JoinBatchTimerCommand represents a request to join a batch's shared
// timer. The first worker to join an idle clock starts it; joining a
// running or paused clock only records membership and never disturbs the
// clock.
type JoinBatchTimerCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewJoinBatchTimerCommand creates a command to join a shared timer.
func NewJoinBatchTimerCommand(batchID, userID kernel.UUID) (JoinBatchTimerCommand, error) {
	command := JoinBatchTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setUserID(userID),
	); err != nil {
		return JoinBatchTimerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c JoinBatchTimerCommand) Validate() error {
	return c.guard.Validate(ErrJoinBatchTimerCommandIsNotConstructed)
}

// BatchID returns the batch whose timer is being joined.
func (c JoinBatchTimerCommand) BatchID() kernel.UUID {
	return c.batchID
}

// UserID returns the joining worker.
func (c JoinBatchTimerCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *JoinBatchTimerCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *JoinBatchTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
