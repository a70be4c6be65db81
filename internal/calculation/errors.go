package calculation

import (
	"fmt"
)

// InvalidParameterError reports a scenario parameter that cannot be simulated.
// It is the only hard failure of a simulation run.
type InvalidParameterError struct {
	Parameter string
	Index     int
	Reason    string
	Err       error
}

func (e *InvalidParameterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid parameter %s (index %d): %s: %v", e.Parameter, e.Index, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid parameter %s (index %d): %s", e.Parameter, e.Index, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return e.Err
}

// NewInvalidParameterError creates a new InvalidParameterError.
func NewInvalidParameterError(parameter string, index int, reason string, err error) error {
	return &InvalidParameterError{
		Parameter: parameter,
		Index:     index,
		Reason:    reason,
		Err:       err,
	}
}
