package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkItemCompleteCommandIsNotConstructed = errors.New(
	"MarkItemCompleteCommand must be created via NewMarkItemCompleteCommand constructor",
)

// MarkItemCompleteCommand represents a request to toggle the completion flag
// of a single line item on an order's worksheet.
type MarkItemCompleteCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	userID     kernel.UUID
	itemIndex  int
	isComplete bool

	guard guard.ConstructorGuard
}

// NewMarkItemCompleteCommand creates a command to mark a line item complete
// or incomplete.
func NewMarkItemCompleteCommand(
	orderID, userID kernel.UUID, itemIndex int, isComplete bool,
) (MarkItemCompleteCommand, error) {
	command := MarkItemCompleteCommand{
		isComplete: isComplete,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUserID(userID),
		command.setItemIndex(itemIndex),
	); err != nil {
		return MarkItemCompleteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkItemCompleteCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemCompleteCommandIsNotConstructed)
}

// OrderID returns the order holding the line item.
func (c MarkItemCompleteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the acting user.
func (c MarkItemCompleteCommand) UserID() kernel.UUID {
	return c.userID
}

// ItemIndex returns the position of the line item on the order.
func (c MarkItemCompleteCommand) ItemIndex() int {
	return c.itemIndex
}

// IsComplete returns the completion flag to apply.
func (c MarkItemCompleteCommand) IsComplete() bool {
	return c.isComplete
}

func (c *MarkItemCompleteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkItemCompleteCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *MarkItemCompleteCommand) setItemIndex(itemIndex int) error {
	if itemIndex < 0 {
		return errs.NewValueIsInvalidError("itemIndex")
	}

	c.itemIndex = itemIndex
	return nil
}
