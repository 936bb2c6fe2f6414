package stage

import (
	"errors"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Domain errors for pipeline operations.
var (
	// ErrStagesAreRequired is returned when building a graph from an empty stage set.
	ErrStagesAreRequired = errs.NewValueIsRequiredError("stages")
	// ErrGraphIsNotConstructed is returned when using an improperly initialized Graph.
	ErrGraphIsNotConstructed = errors.New("Graph must be created via NewGraph constructor")
)

// Graph is the ordered, immutable pipeline definition. It is built once at
// startup from the configured stages and shared read-only across the whole
// application; a pipeline reconfiguration produces a new Graph.
//
// Structural rules enforced at construction:
//   - at least one stage
//   - order indexes are unique and contiguous starting at 0
//   - exactly one stage is terminal and it is the last stage
type Graph struct {
	// stages holds the pipeline ordered by OrderIndex
	stages []*Stage
	// position maps a stage ID to its index in stages
	position map[kernel.UUID]int
	// isConstructed ensures the graph was created via NewGraph
	isConstructed bool
}

// NewGraph builds a Graph from the given stages. The input slice is copied
// and sorted by OrderIndex; the caller's slice is not retained.
//
// Returns:
//   - *Graph: The pipeline if the stage set is structurally valid
//   - error: Validation error describing the first structural violation
func NewGraph(stages []*Stage) (*Graph, error) {
	if len(stages) == 0 {
		return nil, ErrStagesAreRequired
	}

	ordered := make([]*Stage, len(stages))
	copy(ordered, stages)
	for _, s := range ordered {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex() < ordered[j].OrderIndex()
	})

	position := make(map[kernel.UUID]int, len(ordered))
	for i, s := range ordered {
		if s.OrderIndex() != i {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"stages are invalid",
				fmt.Errorf("order indexes must be contiguous from 0, got %d at position %d", s.OrderIndex(), i),
			)
		}
		if _, exists := position[s.ID()]; exists {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"stages are invalid",
				fmt.Errorf("duplicate stage id %s", s.ID()),
			)
		}
		if s.IsTerminal() != (i == len(ordered)-1) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"stages are invalid",
				fmt.Errorf("stage %s: only the last stage may be terminal", s.Name()),
			)
		}
		position[s.ID()] = i
	}

	return &Graph{
		stages:        ordered,
		position:      position,
		isConstructed: true,
	}, nil
}

// Validate ensures the Graph instance was properly constructed.
func (g *Graph) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGraphIsNotConstructed
	}
	return nil
}

// Stages returns all stages ordered by pipeline position.
// The returned slice is a copy to prevent external modification.
func (g *Graph) Stages() []*Stage {
	out := make([]*Stage, len(g.stages))
	copy(out, g.stages)
	return out
}

// EntryStage returns the stage where new orders enter the pipeline.
func (g *Graph) EntryStage() *Stage {
	return g.stages[0]
}

// TerminalStage returns the final, ships-out stage.
func (g *Graph) TerminalStage() *Stage {
	return g.stages[len(g.stages)-1]
}

// StageByID returns the stage with the given identifier.
//
// Returns:
//   - *Stage: The stage if it belongs to the pipeline
//   - error: ObjectNotFoundError if the ID is unknown
func (g *Graph) StageByID(id kernel.UUID) (*Stage, error) {
	i, ok := g.position[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("stage", id.String())
	}
	return g.stages[i], nil
}

// Next returns the stage immediately after the given one.
//
// Returns:
//   - *Stage: The successor stage
//   - error: ObjectNotFoundError if the ID is unknown, InvalidStateError if
//     the given stage is terminal
func (g *Graph) Next(id kernel.UUID) (*Stage, error) {
	i, ok := g.position[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("stage", id.String())
	}
	if i == len(g.stages)-1 {
		return nil, errs.NewInvalidStateErrorWithCause(
			"stage",
			fmt.Errorf("%s is the terminal stage", g.stages[i].Name()),
		)
	}
	return g.stages[i+1], nil
}

// IsTerminal reports whether the given stage is the final one.
//
// Returns:
//   - bool: true for the terminal stage
//   - error: ObjectNotFoundError if the ID is unknown
func (g *Graph) IsTerminal(id kernel.UUID) (bool, error) {
	i, ok := g.position[id]
	if !ok {
		return false, errs.NewObjectNotFoundError("stage", id.String())
	}
	return i == len(g.stages)-1, nil
}

// IndexOf returns the pipeline position of the given stage, starting at 0.
//
// Returns:
//   - int: The stage's position
//   - error: ObjectNotFoundError if the ID is unknown
func (g *Graph) IndexOf(id kernel.UUID) (int, error) {
	i, ok := g.position[id]
	if !ok {
		return 0, errs.NewObjectNotFoundError("stage", id.String())
	}
	return i, nil
}
