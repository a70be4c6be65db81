package transform

import (
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
)

// ParameterTransform defines the interface for edits to a scenario's parameter list.
// Transforms are composable: presets, CLI flags and the TUI all build scenarios by
// applying them in order.
type ParameterTransform interface {
	// Apply returns a new parameter list. The input slice is never modified.
	Apply(params []domain.ScenarioParameter) ([]domain.ScenarioParameter, error)

	// Name returns a short identifier for this transform (e.g., "scale").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform against the parameters without applying it.
	Validate(params []domain.ScenarioParameter) error
}

// ApplyTransforms applies a sequence of transforms to a parameter list.
// Each transform receives the output of the previous one.
func ApplyTransforms(params []domain.ScenarioParameter, transforms []ParameterTransform) ([]domain.ScenarioParameter, error) {
	current := append([]domain.ScenarioParameter(nil), params...)

	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// indexOf returns the position of the first parameter with the given name, or -1
func indexOf(params []domain.ScenarioParameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}
