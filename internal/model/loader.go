package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/domain"
)

// Source records where a network's weights came from.
type Source string

const (
	// SourceLoaded means the weight file was read successfully.
	SourceLoaded Source = "loaded"
	// SourceFallback means no weight file was available and a freshly
	// initialized network is in use. Scores from it are meaningless.
	SourceFallback Source = "fallback"
)

// LoadResult distinguishes a loaded model from a fallback so the condition
// reaches monitoring instead of being swallowed.
type LoadResult struct {
	Network *Network
	Source  Source
	Reason  string
}

// Load reads network weights from path. A missing or unconfigured file
// falls back to an untrained network with the given layer sizes; a file
// that exists but cannot be parsed is a ModelLoadError, since corrupt
// weights deserve a failure rather than silent random scores.
func Load(path string, fallbackSizes []int, logger *logrus.Logger) (*LoadResult, error) {
	if path == "" {
		return fallback(fallbackSizes, "no model path configured", logger), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fallback(fallbackSizes, fmt.Sprintf("model file %s not found", path), logger), nil
	}
	if err != nil {
		return nil, &domain.ModelLoadError{Path: path, Err: err}
	}

	var network Network
	if err := json.Unmarshal(data, &network); err != nil {
		return nil, &domain.ModelLoadError{Path: path, Err: err}
	}
	if err := network.Validate(); err != nil {
		return nil, &domain.ModelLoadError{Path: path, Err: err}
	}

	logger.WithFields(logrus.Fields{
		"path":   path,
		"layers": len(network.Layers),
		"inputs": network.InputWidth(),
	}).Info("Loaded model weights")

	return &LoadResult{Network: &network, Source: SourceLoaded}, nil
}

func fallback(sizes []int, reason string, logger *logrus.Logger) *LoadResult {
	logger.WithField("reason", reason).Warn("Using untrained fallback network; classifier scores are not meaningful")
	return &LoadResult{
		Network: NewRandom(sizes, 0),
		Source:  SourceFallback,
		Reason:  reason,
	}
}
