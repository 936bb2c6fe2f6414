package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateBatchItemProgressCommandIsNotConstructed = errors.New(
	"UpdateBatchItemProgressCommand must be created via NewUpdateBatchItemProgressCommand constructor",
)

// UpdateBatchItemProgressCommand represents a request to record the done
// quantity for one line item of a member order while working a batch.
type UpdateBatchItemProgressCommand struct { //nolint:recvcheck //using for validation
	batchID   kernel.UUID
	orderID   kernel.UUID
	userID    kernel.UUID
	itemIndex int
	qty       int

	guard guard.ConstructorGuard
}

// NewUpdateBatchItemProgressCommand creates a command to record line item
// progress within a batch.
func NewUpdateBatchItemProgressCommand(
	batchID, orderID, userID kernel.UUID, itemIndex, qty int,
) (UpdateBatchItemProgressCommand, error) {
	command := UpdateBatchItemProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setOrderID(orderID),
		command.setUserID(userID),
		command.setItemIndex(itemIndex),
		command.setQty(qty),
	); err != nil {
		return UpdateBatchItemProgressCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateBatchItemProgressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBatchItemProgressCommandIsNotConstructed)
}

// BatchID returns the batch being worked.
func (c UpdateBatchItemProgressCommand) BatchID() kernel.UUID {
	return c.batchID
}

// OrderID returns the member order holding the line item.
func (c UpdateBatchItemProgressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the acting user.
func (c UpdateBatchItemProgressCommand) UserID() kernel.UUID {
	return c.userID
}

// ItemIndex returns the position of the line item on the order.
func (c UpdateBatchItemProgressCommand) ItemIndex() int {
	return c.itemIndex
}

// Qty returns the done quantity to record.
func (c UpdateBatchItemProgressCommand) Qty() int {
	return c.qty
}

func (c *UpdateBatchItemProgressCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *UpdateBatchItemProgressCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateBatchItemProgressCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *UpdateBatchItemProgressCommand) setItemIndex(itemIndex int) error {
	if itemIndex < 0 {
		return errs.NewValueIsInvalidError("itemIndex")
	}

	c.itemIndex = itemIndex
	return nil
}

func (c *UpdateBatchItemProgressCommand) setQty(qty int) error {
	if qty < 0 {
		return errs.NewValueIsInvalidError("qty")
	}

	c.qty = qty
	return nil
}
