// Package stage provides the fulfillment pipeline definition. It implements
// the Stage entity and the Graph value object that fixes the total order
// stages form.
//
// The package includes:
//   - Stage: One step of the pipeline with its position, display color and gating flags
//   - Graph: The ordered, immutable pipeline built once at startup
//
// Key business rules:
//   - Stages form a total order; the stage at index 0 is the entry stage
//   - Exactly one stage is terminal and it is always the last one
//   - Stepping past the terminal stage is an invalid transition
//
// The Graph is shared read-only across the application; a pipeline
// reconfiguration produces a new Graph rather than mutating an existing one.
package stage
