package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrBulkMoveOrdersCommandIsNotConstructed = errors.New(
	"BulkMoveOrdersCommand must be created via NewBulkMoveOrdersCommand constructor",
)

// BulkMoveOrdersCommand represents a request to move several orders onto the
// same target stage in one call. Each order is moved independently: a failure
// on one order never aborts the others.
type BulkMoveOrdersCommand struct { //nolint:recvcheck //using for validation
	orderIDs      []kernel.UUID
	targetStageID kernel.UUID
	userID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkMoveOrdersCommand creates a command to move a set of orders onto
// one target stage.
func NewBulkMoveOrdersCommand(
	orderIDs []kernel.UUID, targetStageID, userID kernel.UUID,
) (BulkMoveOrdersCommand, error) {
	command := BulkMoveOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderIDs(orderIDs),
		command.setTargetStageID(targetStageID),
		command.setUserID(userID),
	); err != nil {
		return BulkMoveOrdersCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkMoveOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkMoveOrdersCommandIsNotConstructed)
}

// OrderIDs returns the orders to move.
func (c BulkMoveOrdersCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// TargetStageID returns the stage every order should land on.
func (c BulkMoveOrdersCommand) TargetStageID() kernel.UUID {
	return c.targetStageID
}

// UserID returns the acting user.
func (c BulkMoveOrdersCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *BulkMoveOrdersCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = append([]kernel.UUID(nil), orderIDs...)
	return nil
}

func (c *BulkMoveOrdersCommand) setTargetStageID(targetStageID kernel.UUID) error {
	if err := targetStageID.Validate(); err != nil {
		return err
	}

	c.targetStageID = targetStageID
	return nil
}

func (c *BulkMoveOrdersCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
