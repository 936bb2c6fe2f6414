package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignOrderStageCommandIsNotConstructed = errors.New(
	"AssignOrderStageCommand must be created via NewAssignOrderStageCommand constructor",
)

// AssignOrderStageCommand represents a request to place an order onto an
// arbitrary stage, bypassing the next-only rule. The timer and worksheet
// gates still apply.
type AssignOrderStageCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	targetStageID kernel.UUID
	userID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderStageCommand creates a command to re-route an order.
func NewAssignOrderStageCommand(orderID, targetStageID, userID kernel.UUID) (AssignOrderStageCommand, error) {
	command := AssignOrderStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTargetStageID(targetStageID),
		command.setUserID(userID),
	); err != nil {
		return AssignOrderStageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderStageCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderStageCommandIsNotConstructed)
}

// OrderID returns the order to re-route.
func (c AssignOrderStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStageID returns the stage to place the order onto.
func (c AssignOrderStageCommand) TargetStageID() kernel.UUID {
	return c.targetStageID
}

// UserID returns the acting user.
func (c AssignOrderStageCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *AssignOrderStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOrderStageCommand) setTargetStageID(targetStageID kernel.UUID) error {
	if err := targetStageID.Validate(); err != nil {
		return err
	}

	c.targetStageID = targetStageID
	return nil
}

func (c *AssignOrderStageCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
