package transform

import (
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// SetParameter replaces the parameter with the same name, or appends it
type SetParameter struct {
	Parameter domain.ScenarioParameter
}

func (t *SetParameter) Name() string { return "set" }

func (t *SetParameter) Description() string {
	return fmt.Sprintf("Set %s from %s to %s", t.Parameter.DisplayLabel(), t.Parameter.BaseValue, t.Parameter.NewValue)
}

func (t *SetParameter) Validate(params []domain.ScenarioParameter) error {
	if t.Parameter.Name == "" {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "parameter name is required"}
	}
	if t.Parameter.BaseValue.IsZero() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: t.Parameter.Name, Err: domain.ErrZeroBaseValue}
	}
	return nil
}

func (t *SetParameter) Apply(params []domain.ScenarioParameter) ([]domain.ScenarioParameter, error) {
	out := append([]domain.ScenarioParameter(nil), params...)
	if i := indexOf(out, t.Parameter.Name); i >= 0 {
		out[i] = t.Parameter
		return out, nil
	}
	return append(out, t.Parameter), nil
}

// ScaleChange multiplies the size of an existing parameter's change by Factor,
// keeping its base value. A factor of 0.5 halves the proposed move.
type ScaleChange struct {
	Parameter string
	Factor    decimal.Decimal
}

func (t *ScaleChange) Name() string { return "scale" }

func (t *ScaleChange) Description() string {
	return fmt.Sprintf("Scale the %s change by %s", t.Parameter, t.Factor)
}

func (t *ScaleChange) Validate(params []domain.ScenarioParameter) error {
	if indexOf(params, t.Parameter) < 0 {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: fmt.Sprintf("parameter %s not in scenario", t.Parameter)}
	}
	return nil
}

func (t *ScaleChange) Apply(params []domain.ScenarioParameter) ([]domain.ScenarioParameter, error) {
	out := append([]domain.ScenarioParameter(nil), params...)
	i := indexOf(out, t.Parameter)
	if i < 0 {
		return nil, &TransformError{TransformName: t.Name(), Operation: "apply", Reason: fmt.Sprintf("parameter %s not in scenario", t.Parameter)}
	}
	p := out[i]
	p.NewValue = p.BaseValue.Add(p.NewValue.Sub(p.BaseValue).Mul(t.Factor))
	out[i] = p
	return out, nil
}

// RemoveParameter drops every parameter with the given name
type RemoveParameter struct {
	Parameter string
}

func (t *RemoveParameter) Name() string { return "remove" }

func (t *RemoveParameter) Description() string {
	return fmt.Sprintf("Remove %s", t.Parameter)
}

func (t *RemoveParameter) Validate(params []domain.ScenarioParameter) error {
	if indexOf(params, t.Parameter) < 0 {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: fmt.Sprintf("parameter %s not in scenario", t.Parameter)}
	}
	return nil
}

func (t *RemoveParameter) Apply(params []domain.ScenarioParameter) ([]domain.ScenarioParameter, error) {
	out := make([]domain.ScenarioParameter, 0, len(params))
	for _, p := range params {
		if p.Name != t.Parameter {
			out = append(out, p)
		}
	}
	return out, nil
}
