package stage

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Domain errors for stage operations.
var (
	// ErrNameIsRequired is returned when attempting to create a stage without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrStageIsNotConstructed is returned when using an improperly initialized Stage.
	ErrStageIsNotConstructed = errors.New("Stage must be created via NewStage constructor")
)

// Stage is one step of the fulfillment pipeline. Stages form a total order by
// OrderIndex; the stage at index 0 is the entry stage and exactly one stage
// is terminal (orders at the terminal stage have shipped).
//
// A stage with RequiresWorksheet set gates outbound transitions on every line
// item of the order being complete.
type Stage struct {
	// id uniquely identifies the stage
	id kernel.UUID
	// name is the human-readable stage name shown on the floor displays
	name string
	// orderIndex is the stage's position in the pipeline, starting at 0
	orderIndex int
	// color is the display color associated with the stage
	color string
	// isTerminal marks the final, ships-out stage
	isTerminal bool
	// requiresWorksheet gates outbound moves on worksheet completion
	requiresWorksheet bool
	// isConstructed ensures the stage was created via a constructor
	isConstructed bool
}

// NewStage creates a Stage with validation. This is the only way to create a
// valid Stage instance.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - orderIndex: Position in the pipeline (must be non-negative)
//   - color: Display color, may be empty
//   - isTerminal: Whether this is the ships-out stage
//   - requiresWorksheet: Whether outbound moves require a complete worksheet
//
// Returns:
//   - *Stage: The created stage if all validations pass
//   - error: Validation error if any parameter is invalid
func NewStage(id kernel.UUID, name string, orderIndex int, color string, isTerminal, requiresWorksheet bool) (*Stage, error) {
	stage := &Stage{
		isConstructed: true,
	}

	if err := errors.Join(
		stage.setID(id),
		stage.setName(name),
		stage.setOrderIndex(orderIndex),
	); err != nil {
		return nil, err
	}

	stage.color = color
	stage.isTerminal = isTerminal
	stage.requiresWorksheet = requiresWorksheet
	return stage, nil
}

// Validate ensures the Stage instance was properly constructed.
func (s *Stage) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStageIsNotConstructed
	}
	return nil
}

// IsEqual compares two stages by their unique identifiers.
func (s *Stage) IsEqual(other *Stage) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the stage's unique identifier.
func (s *Stage) ID() kernel.UUID {
	return s.id
}

// Name returns the stage's human-readable name.
func (s *Stage) Name() string {
	return s.name
}

// OrderIndex returns the stage's position in the pipeline, starting at 0.
func (s *Stage) OrderIndex() int {
	return s.orderIndex
}

// Color returns the display color associated with the stage.
func (s *Stage) Color() string {
	return s.color
}

// IsTerminal reports whether this is the final, ships-out stage.
func (s *Stage) IsTerminal() bool {
	return s.isTerminal
}

// IsEntry reports whether this is the entry stage of the pipeline.
func (s *Stage) IsEntry() bool {
	return s.orderIndex == 0
}

// RequiresWorksheet reports whether leaving this stage requires every line
// item of the order to be complete.
func (s *Stage) RequiresWorksheet() bool {
	return s.requiresWorksheet
}

// setID validates and sets the stage's unique identifier.
// This is a private method used only during construction.
func (s *Stage) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

// setName validates and sets the stage's name.
// This is a private method used only during construction.
func (s *Stage) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

// setOrderIndex validates and sets the stage's pipeline position.
// This is a private method used only during construction.
func (s *Stage) setOrderIndex(orderIndex int) error {
	if orderIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderIndex is invalid", fmt.Errorf("%d is negative", orderIndex))
	}
	s.orderIndex = orderIndex
	return nil
}
