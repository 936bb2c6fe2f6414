package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateBatchCommandIsNotConstructed = errors.New(
	"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
)

// CreateBatchCommand represents a request to group a set of orders into a
// batch so they can be advanced together under one shared timer.
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID  kernel.UUID
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand creates a command to group orders into a batch.
func NewCreateBatchCommand(batchID kernel.UUID, orderIDs []kernel.UUID) (CreateBatchCommand, error) {
	command := CreateBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBatchID(batchID),
		command.setOrderIDs(orderIDs),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

// BatchID returns the identifier for the new batch.
func (c CreateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// OrderIDs returns the orders to group.
func (c CreateBatchCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c *CreateBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *CreateBatchCommand) setOrderIDs(orderIDs []kernel.UUID) error {
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
