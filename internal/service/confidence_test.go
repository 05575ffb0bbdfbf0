package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurolab-analysis-server/internal/domain"
)

func TestConfidenceSingleRow(t *testing.T) {
	c, err := Confidence([][]float64{{0.3, 0.7}})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, c, 1e-12)
}

func TestConfidenceMeanAcrossRows(t *testing.T) {
	c, err := Confidence([][]float64{
		{0.9, 0.1},
		{0.4, 0.6},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, c, 1e-12)
}

func TestConfidenceBounded(t *testing.T) {
	matrices := [][][]float64{
		{{0.5, 0.5}},
		{{1.0, 0.0}, {0.0, 1.0}},
		{{0.01, 0.99}, {0.55, 0.45}, {0.5, 0.5}},
	}
	for _, m := range matrices {
		c, err := Confidence(m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
	}
}

func TestConfidenceEmptyMatrix(t *testing.T) {
	_, err := Confidence(nil)
	require.Error(t, err)

	var invalid *domain.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	_, err = Confidence([][]float64{})
	assert.Error(t, err)
}

func TestConfidenceEmptyRow(t *testing.T) {
	_, err := Confidence([][]float64{{}})
	require.Error(t, err)

	var invalid *domain.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}
