package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurolab-analysis-server/internal/domain"
)

func TestDefaultCatalogBuilds(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)
	require.NotNil(t, cat)

	assert.Len(t, cat.Panels(), 3)
	assert.Equal(t, "blood", cat.Panels()[0].Name)
	assert.Equal(t, "urine", cat.Panels()[1].Name)
	assert.Equal(t, "stool", cat.Panels()[2].Name)
}

func TestLookup(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	ref, ok := cat.Lookup("blood", "CBC", "WBC")
	require.True(t, ok)
	assert.Equal(t, domain.NumericRange, ref.Kind)
	assert.Equal(t, 4.5, ref.Min)
	assert.Equal(t, 11.0, ref.Max)
	assert.Equal(t, "10^9/L", ref.Unit)

	ref, ok = cat.Lookup("urine", "Routine", "Color")
	require.True(t, ok)
	assert.Equal(t, domain.CategoricalRange, ref.Kind)
	assert.Equal(t, []string{"Yellow", "Straw", "Clear"}, ref.NormalValues)

	_, ok = cat.Lookup("blood", "CBC", "Unknown")
	assert.False(t, ok)
	_, ok = cat.Lookup("saliva", "CBC", "WBC")
	assert.False(t, ok)
}

func TestWalkPreservesDeclarationOrder(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	var visited []string
	cat.Walk(func(_ Panel, section Section, entry ParameterEntry) {
		visited = append(visited, section.Name+"/"+entry.Name)
	})

	require.NotEmpty(t, visited)
	assert.Equal(t, "CBC/WBC", visited[0])
	assert.Equal(t, "CBC/RBC", visited[1])
	// Last entry of the last stool section.
	assert.Equal(t, "Culture/Ova", visited[len(visited)-1])
}

func TestNumericParametersOrder(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	names := cat.NumericParameters()
	require.NotEmpty(t, names)
	assert.Equal(t, "WBC", names[0])
	assert.Equal(t, "RBC", names[1])

	// Categorical parameters never appear in the feature layout.
	for _, name := range names {
		assert.NotEqual(t, "Nitrites", name)
		assert.NotEqual(t, "Occult_Blood", name)
	}
}

func TestValidationRejectsMixedShape(t *testing.T) {
	_, err := New([]Panel{{
		Name: "blood",
		Sections: []Section{{
			Name: "CBC", Label: "CBC", Group: "CBC",
			Parameters: []ParameterEntry{{
				Name: "WBC",
				Range: domain.ReferenceRange{
					Kind: domain.NumericRange, Min: 4.5, Max: 11.0,
					NormalValues: []string{"Negative"},
				},
			}},
		}},
	}})

	require.Error(t, err)
	var cfgErr *domain.CatalogConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "WBC", cfgErr.Parameter)
}

func TestValidationRejectsEmptyCategorical(t *testing.T) {
	_, err := New([]Panel{{
		Name: "urine",
		Sections: []Section{{
			Name: "Routine", Label: "Urine Routine", Group: "Urine",
			Parameters: []ParameterEntry{{
				Name:  "Color",
				Range: domain.ReferenceRange{Kind: domain.CategoricalRange},
			}},
		}},
	}})

	require.Error(t, err)
	var cfgErr *domain.CatalogConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestValidationRejectsInvertedBounds(t *testing.T) {
	_, err := New([]Panel{{
		Name: "blood",
		Sections: []Section{{
			Name: "CBC", Label: "CBC", Group: "CBC",
			Parameters: []ParameterEntry{{
				Name:  "WBC",
				Range: domain.ReferenceRange{Kind: domain.NumericRange, Min: 11.0, Max: 4.5},
			}},
		}},
	}})

	require.Error(t, err)
}

func TestZeroWidthNumericRangeIsValid(t *testing.T) {
	// Stool RBC is 0 - 0: a degenerate but legal interval.
	cat, err := Default()
	require.NoError(t, err)

	ref, ok := cat.Lookup("stool", "Routine", "RBC")
	require.True(t, ok)
	assert.Equal(t, domain.NumericRange, ref.Kind)
	assert.Zero(t, ref.Min)
	assert.Zero(t, ref.Max)
}
