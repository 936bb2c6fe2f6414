package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrStartTimerCommandIsNotConstructed = errors.New(
		"StartTimerCommand must be created via NewStartTimerCommand constructor",
	)
	ErrOrderNumberWithoutOrderID = errors.New("orderNumber is set without an orderID")
)

// StartTimerCommand represents a request to open an individual work session
// for a user on a stage, optionally pinned to one order for display.
//
// Example:
//
//	cmd, err := NewStartTimerCommand(userID, stageID, &orderID, "SO-1042")
//	if err != nil {
//	    return fmt.Errorf("invalid timer request: %w", err)
//	}
//
//	handler := NewStartTimerCommandHandler(uowFactory, graph, locks)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to start timer: %w", err)
//	}
type StartTimerCommand struct { //nolint:recvcheck //using for validation
	userID      kernel.UUID
	stageID     kernel.UUID
	orderID     *kernel.UUID
	orderNumber string

	guard guard.ConstructorGuard
}

// NewStartTimerCommand creates a command to open an individual session.
// The order pin is optional; when present the order number travels with the
// session for display in the active worker list.
func NewStartTimerCommand(
	userID kernel.UUID,
	stageID kernel.UUID,
	orderID *kernel.UUID,
	orderNumber string,
) (StartTimerCommand, error) {
	command := StartTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setStageID(stageID),
		command.setOrderPin(orderID, orderNumber),
	); err != nil {
		return StartTimerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartTimerCommandIsNotConstructed if validation fails.
func (c StartTimerCommand) Validate() error {
	return c.guard.Validate(ErrStartTimerCommandIsNotConstructed)
}

// UserID returns the user opening the session.
func (c StartTimerCommand) UserID() kernel.UUID {
	return c.userID
}

// StageID returns the stage the session covers.
func (c StartTimerCommand) StageID() kernel.UUID {
	return c.stageID
}

// OrderID returns the optional order pin.
func (c StartTimerCommand) OrderID() *kernel.UUID {
	return c.orderID
}

// OrderNumber returns the pinned order's display number.
func (c StartTimerCommand) OrderNumber() string {
	return c.orderNumber
}

func (c *StartTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *StartTimerCommand) setStageID(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}

	c.stageID = stageID
	return nil
}

func (c *StartTimerCommand) setOrderPin(orderID *kernel.UUID, orderNumber string) error {
	if orderID == nil {
		if orderNumber != "" {
			return ErrOrderNumberWithoutOrderID
		}
		return nil
	}

	if err := orderID.Validate(); err != nil {
		return err
	}

	id := *orderID
	c.orderID = &id
	c.orderNumber = orderNumber
	return nil
}
