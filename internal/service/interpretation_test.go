package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurolab-analysis-server/internal/catalog"
	"github.com/neurolab-analysis-server/internal/domain"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestBuildInterpretationAllNormal(t *testing.T) {
	cat := testCatalog(t)
	observed := domain.ObservedPanels{
		"CBC": {
			"WBC":        domain.NumberValue(7.0),
			"Hemoglobin": domain.NumberValue(15.0),
		},
	}

	result := BuildInterpretation(cat, observed)

	assert.Empty(t, result.Findings)
	assert.Equal(t, domain.AllNormalText, result.Text)
}

func TestBuildInterpretationFlagsAbnormalCBC(t *testing.T) {
	cat := testCatalog(t)
	observed := domain.ObservedPanels{
		"CBC": {
			"WBC":        domain.NumberValue(12.5),
			"Hemoglobin": domain.NumberValue(11.5),
		},
	}

	result := BuildInterpretation(cat, observed)

	require.Len(t, result.Findings, 2)
	// Catalog declaration order: WBC before Hemoglobin.
	assert.Equal(t, "WBC", result.Findings[0].Parameter)
	assert.Equal(t, domain.DirectionHigh, result.Findings[0].Direction)
	assert.Equal(t, "Hemoglobin", result.Findings[1].Parameter)
	assert.Equal(t, domain.DirectionLow, result.Findings[1].Direction)

	assert.Contains(t, result.Text, "CBC - WBC: 12.5 10^9/L (High) (Reference: 4.5 - 11)")
	assert.Contains(t, result.Text, "CBC - Hemoglobin: 11.5 g/dL (Low) (Reference: 13.5 - 17.5)")
	assert.Contains(t, result.Text, " | ")
}

func TestBuildInterpretationCategoricalRendering(t *testing.T) {
	cat := testCatalog(t)
	observed := domain.ObservedPanels{
		"Urine": {
			"Color":    domain.TextValue("Dark Yellow"),
			"Nitrites": domain.TextValue("Positive"),
		},
	}

	result := BuildInterpretation(cat, observed)

	require.Len(t, result.Findings, 2)
	assert.Contains(t, result.Text, "Urine Routine - Color: Dark Yellow (Abnormal) (Normal: Yellow, Straw, Clear)")
	assert.Contains(t, result.Text, "Urine Routine - Nitrites: Positive (Abnormal) (Normal: Negative)")
}

func TestBuildInterpretationUnknownParametersIgnored(t *testing.T) {
	cat := testCatalog(t)
	observed := domain.ObservedPanels{
		"CBC":     {"SomethingNew": domain.NumberValue(999)},
		"Unknown": {"Mystery": domain.TextValue("value")},
	}

	result := BuildInterpretation(cat, observed)

	assert.Empty(t, result.Findings)
	assert.Equal(t, domain.AllNormalText, result.Text)
}

func TestBuildInterpretationPanelScoping(t *testing.T) {
	cat := testCatalog(t)
	// Urine and stool both define Color; each must be checked only against
	// its own reference.
	observed := domain.ObservedPanels{
		"Urine": {"Color": domain.TextValue("Straw")},
		"Stool": {"Color": domain.TextValue("Black")},
	}

	result := BuildInterpretation(cat, observed)

	require.Len(t, result.Findings, 1)
	assert.Equal(t, "Stool Routine", result.Findings[0].Section)
	assert.Contains(t, result.Text, "Stool Routine - Color: Black")
	assert.NotContains(t, result.Text, "Urine Routine - Color")
}

func TestBuildInterpretationBloodValuesNeverCrossMatchStool(t *testing.T) {
	cat := testCatalog(t)
	// Blood WBC 12.5 would be far outside the stool WBC range; scoped
	// lookup must keep it out of the stool section.
	observed := domain.ObservedPanels{
		"CBC": {"WBC": domain.NumberValue(12.5)},
	}

	result := BuildInterpretation(cat, observed)

	require.Len(t, result.Findings, 1)
	assert.Equal(t, "CBC", result.Findings[0].Section)
}

func TestBuildInterpretationIdempotent(t *testing.T) {
	cat := testCatalog(t)
	observed := domain.ObservedPanels{
		"Lipid": {
			"LDL":           domain.NumberValue(150),
			"HDL":           domain.NumberValue(35),
			"Triglycerides": domain.NumberValue(180),
		},
	}

	first := BuildInterpretation(cat, observed)
	second := BuildInterpretation(cat, observed)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Findings, second.Findings)
}

func TestBuildInterpretationOrderFollowsCatalog(t *testing.T) {
	cat := testCatalog(t)
	observed := domain.ObservedPanels{
		"Thyroid": {"TSH": domain.NumberValue(5.5)},
		"CBC":     {"WBC": domain.NumberValue(12.5)},
		"LFT":     {"ALT": domain.NumberValue(65)},
	}

	result := BuildInterpretation(cat, observed)

	require.Len(t, result.Findings, 3)
	assert.Equal(t, "CBC", result.Findings[0].Section)
	assert.Equal(t, "LFT", result.Findings[1].Section)
	assert.Equal(t, "Thyroid", result.Findings[2].Section)
}
