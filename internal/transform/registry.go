package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ParameterTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set", createSetParameter)
	registry.Register("scale", createScaleChange)
	registry.Register("remove", createRemoveParameter)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ParameterTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "scale:parameter=priceAdjustment,factor=0.5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ParameterTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseParameterSpec parses "name:base:new" or "name:base:new:label" into a parameter.
// Example: "priceAdjustment:100:108:Price"
func ParseParameterSpec(spec string) (domain.ScenarioParameter, error) {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) < 3 {
		return domain.ScenarioParameter{}, fmt.Errorf("invalid parameter spec, expected 'name:base:new', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return domain.ScenarioParameter{}, fmt.Errorf("invalid parameter spec %s: name is required", spec)
	}

	base, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.ScenarioParameter{}, fmt.Errorf("invalid base value in %s: %w", spec, err)
	}
	newValue, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.ScenarioParameter{}, fmt.Errorf("invalid new value in %s: %w", spec, err)
	}

	p := domain.ScenarioParameter{Name: name, BaseValue: base, NewValue: newValue}
	if len(parts) == 4 {
		p.Label = strings.TrimSpace(parts[3])
	}
	return p, nil
}

// Factory functions for each transform

func createSetParameter(params map[string]string) (ParameterTransform, error) {
	name, ok := params["parameter"]
	if !ok {
		return nil, fmt.Errorf("missing required parameter: parameter")
	}
	baseStr, ok := params["base"]
	if !ok {
		return nil, fmt.Errorf("missing required parameter: base")
	}
	newStr, ok := params["new"]
	if !ok {
		return nil, fmt.Errorf("missing required parameter: new")
	}

	p, err := ParseParameterSpec(name + ":" + baseStr + ":" + newStr)
	if err != nil {
		return nil, err
	}
	p.Label = params["label"]

	return &SetParameter{Parameter: p}, nil
}

func createScaleChange(params map[string]string) (ParameterTransform, error) {
	name, ok := params["parameter"]
	if !ok {
		return nil, fmt.Errorf("missing required parameter: parameter")
	}
	factorStr, ok := params["factor"]
	if !ok {
		return nil, fmt.Errorf("missing required parameter: factor")
	}

	factor, err := decimal.NewFromString(factorStr)
	if err != nil {
		return nil, fmt.Errorf("invalid factor value: %s", factorStr)
	}

	return &ScaleChange{Parameter: name, Factor: factor}, nil
}

func createRemoveParameter(params map[string]string) (ParameterTransform, error) {
	name, ok := params["parameter"]
	if !ok {
		return nil, fmt.Errorf("missing required parameter: parameter")
	}

	return &RemoveParameter{Parameter: name}, nil
}
