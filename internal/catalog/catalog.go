// Package catalog holds the static reference-range table for all supported
// lab panels. The catalog is constructed once at process start, validated,
// and shared read-only across requests.
package catalog

import (
	"github.com/neurolab-analysis-server/internal/domain"
)

// ParameterEntry pairs a parameter name with its reference range.
type ParameterEntry struct {
	Name  string
	Range domain.ReferenceRange
}

// Section is one test type within a panel (CBC, LFT, urine Routine, ...).
type Section struct {
	// Name is the section key within its panel.
	Name string
	// Label is the test-type label rendered into interpretation text.
	Label string
	// Group is the request key callers submit this section's parameters
	// under ("CBC", "Urine", ...).
	Group string
	// Parameters in declaration order; interpretation order follows it.
	Parameters []ParameterEntry
}

// Panel is a named group of related sections (blood, urine, stool).
type Panel struct {
	Name     string
	Sections []Section
}

// Catalog is the ordered three-level reference table. Immutable after New.
type Catalog struct {
	panels []Panel
	index  map[string]map[string]map[string]domain.ReferenceRange
}

// New builds a catalog from the given panels and validates every entry.
// An entry with an inconsistent range shape is a configuration error and
// fails fast here rather than silently misclassifying results later.
func New(panels []Panel) (*Catalog, error) {
	c := &Catalog{
		panels: panels,
		index:  make(map[string]map[string]map[string]domain.ReferenceRange),
	}

	for _, panel := range panels {
		sections := make(map[string]map[string]domain.ReferenceRange, len(panel.Sections))
		for _, section := range panel.Sections {
			params := make(map[string]domain.ReferenceRange, len(section.Parameters))
			for _, entry := range section.Parameters {
				if err := validateEntry(panel.Name, section.Name, entry); err != nil {
					return nil, err
				}
				params[entry.Name] = entry.Range
			}
			sections[section.Name] = params
		}
		c.index[panel.Name] = sections
	}

	return c, nil
}

func validateEntry(panel, section string, entry ParameterEntry) error {
	r := entry.Range
	switch r.Kind {
	case domain.NumericRange:
		if len(r.NormalValues) > 0 {
			return &domain.CatalogConfigurationError{
				Panel: panel, Section: section, Parameter: entry.Name,
				Message: "numeric range must not carry normal values",
			}
		}
		if r.Max < r.Min {
			return &domain.CatalogConfigurationError{
				Panel: panel, Section: section, Parameter: entry.Name,
				Message: "maximum is below minimum",
			}
		}
	case domain.CategoricalRange:
		if len(r.NormalValues) == 0 {
			return &domain.CatalogConfigurationError{
				Panel: panel, Section: section, Parameter: entry.Name,
				Message: "categorical range has no normal values",
			}
		}
		if r.Min != 0 || r.Max != 0 || r.Unit != "" {
			return &domain.CatalogConfigurationError{
				Panel: panel, Section: section, Parameter: entry.Name,
				Message: "categorical range must not carry numeric bounds",
			}
		}
	default:
		return &domain.CatalogConfigurationError{
			Panel: panel, Section: section, Parameter: entry.Name,
			Message: "unknown range kind",
		}
	}
	return nil
}

// Lookup returns the reference range for a parameter, if present.
func (c *Catalog) Lookup(panel, section, parameter string) (domain.ReferenceRange, bool) {
	sections, ok := c.index[panel]
	if !ok {
		return domain.ReferenceRange{}, false
	}
	params, ok := sections[section]
	if !ok {
		return domain.ReferenceRange{}, false
	}
	r, ok := params[parameter]
	return r, ok
}

// Walk visits every entry in declaration order: panels, then sections,
// then parameters.
func (c *Catalog) Walk(fn func(panel Panel, section Section, entry ParameterEntry)) {
	for _, panel := range c.panels {
		for _, section := range panel.Sections {
			for _, entry := range section.Parameters {
				fn(panel, section, entry)
			}
		}
	}
}

// Panels returns the ordered panel list.
func (c *Catalog) Panels() []Panel {
	return c.panels
}

// NumericParameters returns the names of all numeric-range parameters in
// declaration order. The classifier's feature layout follows this order.
func (c *Catalog) NumericParameters() []string {
	var names []string
	c.Walk(func(_ Panel, _ Section, entry ParameterEntry) {
		if entry.Range.Kind == domain.NumericRange {
			names = append(names, entry.Name)
		}
	})
	return names
}
