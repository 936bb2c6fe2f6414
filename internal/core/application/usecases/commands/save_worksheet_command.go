package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSaveWorksheetCommandIsNotConstructed = errors.New(
	"SaveWorksheetCommand must be created via NewSaveWorksheetCommand constructor",
)

// WorksheetItemInput carries the progress for one line item in a worksheet
// save. ItemIndex addresses the line item by its position on the order.
type WorksheetItemInput struct {
	ItemIndex  int
	QtyDone    int
	IsComplete bool
}

// SaveWorksheetCommand represents a request to record worksheet progress for
// several line items of an order at once.
type SaveWorksheetCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID
	items   []WorksheetItemInput

	guard guard.ConstructorGuard
}

// NewSaveWorksheetCommand creates a command to save worksheet progress.
func NewSaveWorksheetCommand(
	orderID, userID kernel.UUID, items []WorksheetItemInput,
) (SaveWorksheetCommand, error) {
	command := SaveWorksheetCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUserID(userID),
		command.setItems(items),
	); err != nil {
		return SaveWorksheetCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveWorksheetCommand) Validate() error {
	return c.guard.Validate(ErrSaveWorksheetCommandIsNotConstructed)
}

// OrderID returns the order whose worksheet is being saved.
func (c SaveWorksheetCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the acting user.
func (c SaveWorksheetCommand) UserID() kernel.UUID {
	return c.userID
}

// Items returns the per-item progress rows.
func (c SaveWorksheetCommand) Items() []WorksheetItemInput {
	return c.items
}

func (c *SaveWorksheetCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SaveWorksheetCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *SaveWorksheetCommand) setItems(items []WorksheetItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if item.ItemIndex < 0 {
			return errs.NewValueIsInvalidError("itemIndex")
		}

		if item.QtyDone < 0 {
			return errs.NewValueIsInvalidError("qtyDone")
		}
	}

	c.items = append([]WorksheetItemInput(nil), items...)
	return nil
}
