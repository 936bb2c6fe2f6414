package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceBatchCommandIsNotConstructed = errors.New(
	"AdvanceBatchCommand must be created via NewAdvanceBatchCommand constructor",
)

// AdvanceBatchCommand represents a request to move a whole batch, and with it
// every member order, onto a target stage.
type AdvanceBatchCommand struct { //nolint:recvcheck //using for validation
	batchID       kernel.UUID
	targetStageID kernel.UUID
	userID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceBatchCommand creates a command to advance a batch.
func NewAdvanceBatchCommand(batchID, targetStageID, userID kernel.UUID) (AdvanceBatchCommand, error) {
	command := AdvanceBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setTargetStageID(targetStageID),
		command.setUserID(userID),
	); err != nil {
		return AdvanceBatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceBatchCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceBatchCommandIsNotConstructed)
}

// BatchID returns the batch to advance.
func (c AdvanceBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// TargetStageID returns the stage the batch should land on.
func (c AdvanceBatchCommand) TargetStageID() kernel.UUID {
	return c.targetStageID
}

// UserID returns the acting user.
func (c AdvanceBatchCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *AdvanceBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *AdvanceBatchCommand) setTargetStageID(targetStageID kernel.UUID) error {
	if err := targetStageID.Validate(); err != nil {
		return err
	}

	c.targetStageID = targetStageID
	return nil
}

func (c *AdvanceBatchCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
