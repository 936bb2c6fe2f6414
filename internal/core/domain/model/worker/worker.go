package worker

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for worker operations.
var (
	// ErrNameIsRequired is returned when attempting to create a worker without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrWorkerIsNotConstructed is returned when using an improperly initialized Worker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")
)

// Worker represents a fulfillment floor worker. Workers hold timer sessions,
// join batch timers and appear in labor reports, where their hourly rate
// turns tracked minutes into labor cost.
type Worker struct {
	// id uniquely identifies the worker
	id kernel.UUID
	// name is the worker's display name
	name string
	// hourlyRate is the labor rate used by reporting, in currency units per hour
	hourlyRate float64
	// guard ensures the worker was properly constructed
	guard guard.ConstructorGuard
}

// NewWorker creates a Worker with validation. This is the only way to create
// a valid Worker instance.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - name: Display name (must be non-empty)
//   - hourlyRate: Labor rate per hour (must be non-negative)
//
// Returns:
//   - *Worker: The created worker if all validations pass
//   - error: Validation error if any parameter is invalid
func NewWorker(id kernel.UUID, name string, hourlyRate float64) (*Worker, error) {
	worker := &Worker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		worker.setID(id),
		worker.setName(name),
		worker.setHourlyRate(hourlyRate),
	); err != nil {
		return nil, err
	}

	return worker, nil
}

// Validate checks if the Worker was properly constructed.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// IsEqual compares two workers by their unique identifiers.
func (w *Worker) IsEqual(other *Worker) bool {
	if other == nil {
		return false
	}
	return w.id.IsEqual(other.id)
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Name returns the worker's display name.
func (w *Worker) Name() string {
	return w.name
}

// HourlyRate returns the labor rate used by reporting.
func (w *Worker) HourlyRate() float64 {
	return w.hourlyRate
}

// setID sets the worker's unique identifier with validation.
// This is an internal setter used during construction.
func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

// setName sets the worker's name with validation.
// This is an internal setter used during construction.
func (w *Worker) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}

// setHourlyRate sets the worker's labor rate with validation.
// This is an internal setter used during construction.
func (w *Worker) setHourlyRate(hourlyRate float64) error {
	if hourlyRate < 0 {
		return errs.NewValueIsInvalidErrorWithCause("hourlyRate is invalid", fmt.Errorf("%.2f is negative", hourlyRate))
	}
	w.hourlyRate = hourlyRate
	return nil
}
