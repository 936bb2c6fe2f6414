package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPauseTimerCommandIsNotConstructed = errors.New(
	"PauseTimerCommand must be created via NewPauseTimerCommand constructor",
)

// PauseTimerCommand represents a request to pause a user's running session
// on a stage, banking the elapsed time.
type PauseTimerCommand struct { //nolint:recvcheck //using for validation
	userID  kernel.UUID
	stageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPauseTimerCommand creates a command to pause an individual session.
func NewPauseTimerCommand(userID, stageID kernel.UUID) (PauseTimerCommand, error) {
	command := PauseTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setStageID(stageID),
	); err != nil {
		return PauseTimerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PauseTimerCommand) Validate() error {
	return c.guard.Validate(ErrPauseTimerCommandIsNotConstructed)
}

// UserID returns the user pausing their session.
func (c PauseTimerCommand) UserID() kernel.UUID {
	return c.userID
}

// StageID returns the stage the session is expected to cover.
func (c PauseTimerCommand) StageID() kernel.UUID {
	return c.stageID
}

func (c *PauseTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *PauseTimerCommand) setStageID(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}

	c.stageID = stageID
	return nil
}
