package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrResumeTimerCommandIsNotConstructed = errors.New(
	"ResumeTimerCommand must be created via NewResumeTimerCommand constructor",
)

// ResumeTimerCommand represents a request to resume a user's paused
// session on a stage. The banked time is untouched; a fresh start instant
// is recorded.
type ResumeTimerCommand struct { //nolint:recvcheck //using for validation
	userID  kernel.UUID
	stageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeTimerCommand creates a command to resume an individual session.
func NewResumeTimerCommand(userID, stageID kernel.UUID) (ResumeTimerCommand, error) {
	command := ResumeTimerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setStageID(stageID),
	); err != nil {
		return ResumeTimerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeTimerCommand) Validate() error {
	return c.guard.Validate(ErrResumeTimerCommandIsNotConstructed)
}

// UserID returns the user resuming their session.
func (c ResumeTimerCommand) UserID() kernel.UUID {
	return c.userID
}

// StageID returns the stage the session is expected to cover.
func (c ResumeTimerCommand) StageID() kernel.UUID {
	return c.stageID
}

func (c *ResumeTimerCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *ResumeTimerCommand) setStageID(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}

	c.stageID = stageID
	return nil
}
