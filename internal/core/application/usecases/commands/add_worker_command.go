package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddWorkerCommandIsNotConstructed = errors.New(
	"AddWorkerCommand must be created via NewAddWorkerCommand constructor",
)

// AddWorkerCommand represents a request to register a worker so their logged
// minutes can be costed in reports.
type AddWorkerCommand struct { //nolint:recvcheck //using for validation
	workerID   kernel.UUID
	name       string
	hourlyRate float64

	guard guard.ConstructorGuard
}

// NewAddWorkerCommand creates a command to register a worker.
func NewAddWorkerCommand(workerID kernel.UUID, name string, hourlyRate float64) (AddWorkerCommand, error) {
	command := AddWorkerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setWorkerID(workerID),
		command.setName(name),
		command.setHourlyRate(hourlyRate),
	); err != nil {
		return AddWorkerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddWorkerCommand) Validate() error {
	return c.guard.Validate(ErrAddWorkerCommandIsNotConstructed)
}

// WorkerID returns the identifier for the new worker.
func (c AddWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Name returns the worker's display name.
func (c AddWorkerCommand) Name() string {
	return c.name
}

// HourlyRate returns the worker's pay rate used for labor costing.
func (c AddWorkerCommand) HourlyRate() float64 {
	return c.hourlyRate
}

func (c *AddWorkerCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *AddWorkerCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *AddWorkerCommand) setHourlyRate(hourlyRate float64) error {
	if hourlyRate < 0 {
		return errs.NewValueIsInvalidError("hourlyRate")
	}

	c.hourlyRate = hourlyRate
	return nil
}
