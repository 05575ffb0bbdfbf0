package service

import (
	"strings"

	"github.com/neurolab-analysis-server/internal/domain"
)

// Evaluate reports whether an observed value is abnormal for its reference
// range, and in which direction it deviates.
//
// Numeric bounds are inclusive of the normal range: a value equal to Min or
// Max is normal. Categorical matching is case-sensitive against the
// catalog's stored casing; the observed text is trimmed of surrounding
// whitespace before comparison.
func Evaluate(value domain.Value, ref domain.ReferenceRange) (bool, domain.Direction) {
	switch ref.Kind {
	case domain.CategoricalRange:
		text := strings.TrimSpace(value.String())
		for _, normal := range ref.NormalValues {
			if text == normal {
				return false, ""
			}
		}
		return true, domain.DirectionAbnormal
	case domain.NumericRange:
		n, ok := value.AsNumber()
		if !ok {
			// Non-numeric value against a numeric range: fail closed so one
			// malformed field cannot void an otherwise valid panel.
			return false, ""
		}
		if n < ref.Min {
			return true, domain.DirectionLow
		}
		if n > ref.Max {
			return true, domain.DirectionHigh
		}
	}
	return false, ""
}
