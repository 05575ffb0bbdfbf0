package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/neurolab-analysis-server/internal/catalog"
	"github.com/neurolab-analysis-server/internal/domain"
)

// BuildInterpretation walks the catalog in declaration order, evaluates
// every parameter present in both the catalog and the observed panels, and
// renders the ordered findings. Parameters submitted under groups or names
// the catalog does not know are silently ignored.
//
// The walk order is fixed by the catalog, so identical input always yields
// identical findings and text.
func BuildInterpretation(cat *catalog.Catalog, observed domain.ObservedPanels) domain.InterpretationResult {
	var findings []domain.Finding
	var rendered []string

	cat.Walk(func(_ catalog.Panel, section catalog.Section, entry catalog.ParameterEntry) {
		value, ok := observed.Lookup(section.Group, entry.Name)
		if !ok {
			return
		}
		abnormal, direction := Evaluate(value, entry.Range)
		if !abnormal {
			return
		}
		findings = append(findings, domain.Finding{
			Section:   section.Label,
			Parameter: entry.Name,
			Value:     value.String(),
			Direction: direction,
			Reference: entry.Range,
		})
		rendered = append(rendered, renderFinding(section.Label, entry.Name, value, direction, entry.Range))
	})

	if len(findings) == 0 {
		return domain.InterpretationResult{Text: domain.AllNormalText}
	}
	return domain.InterpretationResult{
		Findings: findings,
		Text:     strings.Join(rendered, " | "),
	}
}

// renderFinding produces the human-readable line for one abnormal
// parameter. Numeric findings carry the deviation direction and the
// reference interval; categorical findings carry the allowed value set.
func renderFinding(section, parameter string, value domain.Value, direction domain.Direction, ref domain.ReferenceRange) string {
	if ref.Kind == domain.CategoricalRange {
		return fmt.Sprintf("%s - %s: %s (%s) (Normal: %s)",
			section, parameter, value.String(), direction, strings.Join(ref.NormalValues, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s: %s", section, parameter, value.String())
	if ref.Unit != "" {
		b.WriteString(" " + ref.Unit)
	}
	fmt.Fprintf(&b, " (%s) (Reference: %s - %s)", direction, formatBound(ref.Min), formatBound(ref.Max))
	return b.String()
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
