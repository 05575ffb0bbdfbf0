package domain

import (
	"strconv"
	"strings"
)

// RangeKind distinguishes the two reference-range shapes.
type RangeKind int

const (
	// NumericRange bounds a value by an inclusive [Min, Max] interval.
	NumericRange RangeKind = iota
	// CategoricalRange restricts a value to an allow-list of normal strings.
	CategoricalRange
)

// ReferenceRange is one catalog entry: exactly one of the two shapes is
// populated, resolved at catalog construction time rather than inferred
// per lookup.
type ReferenceRange struct {
	Kind         RangeKind `json:"kind"`
	Min          float64   `json:"min,omitempty"`
	Max          float64   `json:"max,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	NormalValues []string  `json:"normal_values,omitempty"`
}

// Direction describes which way an abnormal value deviates.
type Direction string

const (
	DirectionHigh     Direction = "High"
	DirectionLow      Direction = "Low"
	DirectionAbnormal Direction = "Abnormal"
)

// Value is an observed parameter value, either numeric or text.
type Value struct {
	Number   float64
	Text     string
	IsNumber bool
}

// NumberValue wraps a numeric observation.
func NumberValue(n float64) Value {
	return Value{Number: n, IsNumber: true}
}

// TextValue wraps a string observation.
func TextValue(s string) Value {
	return Value{Text: s}
}

// AsNumber returns the numeric form of the value, parsing text values
// that hold a number.
func (v Value) AsNumber() (float64, bool) {
	if v.IsNumber {
		return v.Number, true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String renders the value the way it appears in interpretation text.
func (v Value) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Text
}

// Finding is a single parameter flagged abnormal against its reference range.
type Finding struct {
	Section   string         `json:"test_type"`
	Parameter string         `json:"parameter"`
	Value     string         `json:"value"`
	Direction Direction      `json:"direction"`
	Reference ReferenceRange `json:"reference"`
}

// InterpretationResult holds the ordered findings and their rendered text.
type InterpretationResult struct {
	Findings []Finding `json:"findings"`
	Text     string    `json:"text"`
}

// AllNormalText is the fixed sentence returned when no finding is produced.
const AllNormalText = "All test results are within normal ranges."

// ClassifierResult carries the model output distribution per input row.
type ClassifierResult struct {
	Probabilities [][]float64 `json:"probabilities"`
	Predictions   []int       `json:"predictions"`
}

// AnalysisResponse is the complete per-request analysis output.
type AnalysisResponse struct {
	Results         ClassifierResult `json:"results"`
	Interpretation  string           `json:"interpretation"`
	Confidence      float64          `json:"confidence"`
	Timestamp       string           `json:"timestamp"`
	Recommendations []string         `json:"recommendations"`
	ModelFallback   bool             `json:"model_fallback,omitempty"`
}

// ImagingResponse is the per-request output of the imaging services.
type ImagingResponse struct {
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
	Modality   string  `json:"modality"`
	Timestamp  string  `json:"timestamp"`
}
