package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

// CompleteBatchCommand represents a request to close out a batch once every
// member order has been worked through the pipeline.
type CompleteBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteBatchCommand creates a command to complete a batch.
func NewCompleteBatchCommand(batchID, userID kernel.UUID) (CompleteBatchCommand, error) {
	command := CompleteBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setUserID(userID),
	); err != nil {
		return CompleteBatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

// BatchID returns the batch to complete.
func (c CompleteBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// UserID returns the acting user.
func (c CompleteBatchCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *CompleteBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *CompleteBatchCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
