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

// Standardizer scales features by precomputed population statistics, one
// mean/std pair per feature slot. The statistics are configuration loaded
// once at startup; nothing is fit at request time.
type Standardizer struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// LoadStandardizer reads the standardization table from path. A missing or
// unconfigured table yields the identity transform.
func LoadStandardizer(path string, logger *logrus.Logger) (*Standardizer, error) {
	if path == "" {
		return &Standardizer{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.WithField("path", path).Warn("Standardization table not found, using identity scaling")
		return &Standardizer{}, nil
	}
	if err != nil {
		return nil, &domain.ModelLoadError{Path: path, Err: err}
	}

	var s Standardizer
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &domain.ModelLoadError{Path: path, Err: err}
	}
	if len(s.Mean) != len(s.Std) {
		return nil, &domain.ModelLoadError{
			Path: path,
			Err:  fmt.Errorf("mean and std length mismatch: %d vs %d", len(s.Mean), len(s.Std)),
		}
	}
	return &s, nil
}

// Transform standardizes each feature slot covered by the table and leaves
// the rest untouched. A non-positive std is treated as 1 to avoid division
// blowups on constant features.
func (s *Standardizer) Transform(features []float64) []float64 {
	out := make([]float64, len(features))
	copy(out, features)
	for i := range out {
		if i >= len(s.Mean) {
			break
		}
		std := s.Std[i]
		if std <= 0 {
			std = 1
		}
		out[i] = (out[i] - s.Mean[i]) / std
	}
	return out
}
