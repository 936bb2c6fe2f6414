package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkOrderShippedCommandIsNotConstructed = errors.New(
	"MarkOrderShippedCommand must be created via NewMarkOrderShippedCommand constructor",
)

// MarkOrderShippedCommand represents a request to ship an order: move it
// from the last working stage onto the terminal stage. Shipping is always
// worksheet-gated and always deducts inventory.
type MarkOrderShippedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderShippedCommand creates a command to ship an order.
func NewMarkOrderShippedCommand(orderID, userID kernel.UUID) (MarkOrderShippedCommand, error) {
	command := MarkOrderShippedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUserID(userID),
	); err != nil {
		return MarkOrderShippedCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderShippedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderShippedCommandIsNotConstructed)
}

// OrderID returns the order to ship.
func (c MarkOrderShippedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the acting user.
func (c MarkOrderShippedCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *MarkOrderShippedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkOrderShippedCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
