package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMoveOrderNextCommandIsNotConstructed = errors.New(
	"MoveOrderNextCommand must be created via NewMoveOrderNextCommand constructor",
)

// MoveOrderNextCommand represents a request to advance an order one step
// along the pipeline.
//
// Example:
//
//	cmd, err := NewMoveOrderNextCommand(orderID, userID)
//	if err != nil {
//	    return fmt.Errorf("invalid move request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrTimerRequired) {
//	    // The caller must start a timer on the order's stage first
//	    return err
//	}
//	if result.Deduction.HasShortages() {
//	    // The move committed; shortages are informational
//	}
type MoveOrderNextCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewMoveOrderNextCommand creates a command to advance an order.
func NewMoveOrderNextCommand(orderID, userID kernel.UUID) (MoveOrderNextCommand, error) {
	command := MoveOrderNextCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUserID(userID),
	); err != nil {
		return MoveOrderNextCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveOrderNextCommand) Validate() error {
	return c.guard.Validate(ErrMoveOrderNextCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c MoveOrderNextCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the acting user.
func (c MoveOrderNextCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *MoveOrderNextCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MoveOrderNextCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
