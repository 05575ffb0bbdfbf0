package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(ErrInvalidInput, "bad payload", "missing panel", "req-1")

	assert.Equal(t, "INVALID_INPUT: bad payload", err.Error())
	assert.Equal(t, "req-1", err.CorrelationID)
	assert.False(t, err.Timestamp.IsZero())
}

func TestInvalidInputError(t *testing.T) {
	err := &InvalidInputError{Field: "observed_panel", Message: "must be a non-empty mapping"}
	assert.Contains(t, err.Error(), "observed_panel")

	err = &InvalidInputError{Message: "empty"}
	assert.Equal(t, "invalid input: empty", err.Error())
}

func TestModelLoadErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := &ModelLoadError{Path: "/models/test.json", Err: cause}

	assert.Contains(t, err.Error(), "/models/test.json")
	assert.ErrorIs(t, err, cause)
}

func TestCatalogConfigurationError(t *testing.T) {
	err := &CatalogConfigurationError{
		Panel: "blood", Section: "CBC", Parameter: "WBC",
		Message: "numeric range must not carry normal values",
	}
	assert.Equal(t, "catalog entry blood/CBC/WBC: numeric range must not carry normal values", err.Error())
}

func TestAnalysisErrorWrapsStage(t *testing.T) {
	cause := errors.New("matrix empty")
	err := &AnalysisError{Stage: "confidence", Err: cause}

	require.Contains(t, err.Error(), "confidence")
	assert.ErrorIs(t, err, cause)
}
