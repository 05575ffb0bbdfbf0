package model

import (
	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/domain"
)

// Classifier wraps a scoring network and its standardizer behind the one
// operation the analysis engine needs: feature vector in, class
// distribution out.
type Classifier struct {
	network      *Network
	standardizer *Standardizer
	source       Source
	reason       string
	logger       *logrus.Logger
}

// NewClassifier loads the test-analysis network and standardization table.
// A missing weight file degrades to the untrained fallback; a corrupt one
// is a ModelLoadError and should be treated as fatal at startup.
func NewClassifier(modelPath, statsPath string, logger *logrus.Logger) (*Classifier, error) {
	result, err := Load(modelPath, TestAnalysisLayerSizes, logger)
	if err != nil {
		return nil, err
	}
	standardizer, err := LoadStandardizer(statsPath, logger)
	if err != nil {
		return nil, err
	}
	return &Classifier{
		network:      result.Network,
		standardizer: standardizer,
		source:       result.Source,
		reason:       result.Reason,
		logger:       logger,
	}, nil
}

// NewClassifierFromNetwork wraps an already constructed network. Used by
// tests and by callers that manage loading themselves.
func NewClassifierFromNetwork(network *Network, standardizer *Standardizer, source Source, logger *logrus.Logger) *Classifier {
	if standardizer == nil {
		standardizer = &Standardizer{}
	}
	return &Classifier{
		network:      network,
		standardizer: standardizer,
		source:       source,
		logger:       logger,
	}
}

// Score standardizes the feature vector, fits it to the network's input
// width and runs one forward pass. The result holds a single row.
func (c *Classifier) Score(features []float64) *domain.ClassifierResult {
	x := c.standardizer.Transform(features)
	x = fitWidth(x, c.network.InputWidth())

	probs := Softmax(c.network.Forward(x))
	return &domain.ClassifierResult{
		Probabilities: [][]float64{probs},
		Predictions:   []int{Argmax(probs)},
	}
}

// FallbackActive reports whether the untrained fallback network is in use.
func (c *Classifier) FallbackActive() bool {
	return c.source == SourceFallback
}

// FallbackReason returns why the fallback was engaged, if it was.
func (c *Classifier) FallbackReason() string {
	return c.reason
}

// fitWidth pads with zeros or truncates so the vector matches the
// network's expected input width.
func fitWidth(features []float64, width int) []float64 {
	if len(features) == width {
		return features
	}
	out := make([]float64, width)
	copy(out, features)
	return out
}
