package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ObservedPanels is the caller-submitted mapping of panel name to
// parameter name to observed value. Ephemeral, one per request.
type ObservedPanels map[string]map[string]Value

// ParseObserved converts a decoded JSON body into ObservedPanels,
// rejecting anything that is not a numeric or string leaf value.
func ParseObserved(raw map[string]map[string]interface{}) (ObservedPanels, error) {
	if len(raw) == 0 {
		return nil, &InvalidInputError{Field: "observed_panel", Message: "must be a non-empty mapping"}
	}

	observed := make(ObservedPanels, len(raw))
	for panel, params := range raw {
		if len(params) == 0 {
			return nil, &InvalidInputError{Field: panel, Message: "panel has no parameters"}
		}
		converted := make(map[string]Value, len(params))
		for name, v := range params {
			value, err := convertValue(v)
			if err != nil {
				return nil, &InvalidInputError{
					Field:   fmt.Sprintf("%s.%s", panel, name),
					Message: err.Error(),
				}
			}
			converted[name] = value
		}
		observed[panel] = converted
	}
	return observed, nil
}

func convertValue(v interface{}) (Value, error) {
	switch t := v.(type) {
	case float64:
		return NumberValue(t), nil
	case int:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number: %v", t)
		}
		return NumberValue(n), nil
	case string:
		return TextValue(t), nil
	default:
		return Value{}, fmt.Errorf("value must be numeric or string, got %T", v)
	}
}

// Lookup returns the value for a parameter within the named group. Lookup
// is strictly group-scoped so same-named parameters (urine vs stool Color)
// never cross-match.
func (o ObservedPanels) Lookup(group, parameter string) (Value, bool) {
	params, ok := o[group]
	if !ok {
		return Value{}, false
	}
	v, ok := params[parameter]
	return v, ok
}

// Flatten collapses the panels into a single parameter row. Scoped lookup is
// preferred for interpretation; the flat row feeds the classifier. Duplicate
// parameter names resolve in sorted group order for determinism.
func (o ObservedPanels) Flatten() map[string]Value {
	row := make(map[string]Value)
	for _, g := range o.sortedGroups() {
		for name, v := range o[g] {
			if _, ok := row[name]; !ok {
				row[name] = v
			}
		}
	}
	return row
}

func (o ObservedPanels) sortedGroups() []string {
	groups := make([]string, 0, len(o))
	for g := range o {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
