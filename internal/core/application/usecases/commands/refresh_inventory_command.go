package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// RefreshInventoryCommand triggers a stock status refresh across all
// unshipped orders.
type RefreshInventoryCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrRefreshInventoryCommandIsNotConstructed = errors.New(
		"RefreshInventoryCommand must be created via NewRefreshInventoryCommand constructor",
	)
)

// NewRefreshInventoryCommand creates a command to refresh stock status.
// This is a parameterless command that processes all unshipped orders.
func NewRefreshInventoryCommand() RefreshInventoryCommand {
	command := RefreshInventoryCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrRefreshInventoryCommandIsNotConstructed if validation fails.
func (c *RefreshInventoryCommand) Validate() error {
	return c.guard.Validate(ErrRefreshInventoryCommandIsNotConstructed)
}
