package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/catalog"
	"github.com/neurolab-analysis-server/internal/domain"
	"github.com/neurolab-analysis-server/internal/model"
)

// TestAnalysisService interprets structured lab panel results: it scores
// the numeric subset through the classifier, cross-references every
// submitted parameter against the reference catalog, and assembles the
// interpretation, confidence and recommendations.
//
// The service holds no per-request state; the catalog and classifier are
// read-only after construction, so concurrent Analyze calls need no
// synchronization.
type TestAnalysisService struct {
	logger     *logrus.Logger
	catalog    *catalog.Catalog
	classifier *model.Classifier
}

// NewTestAnalysisService creates a new test analysis service.
func NewTestAnalysisService(logger *logrus.Logger, cat *catalog.Catalog, classifier *model.Classifier) *TestAnalysisService {
	return &TestAnalysisService{
		logger:     logger,
		catalog:    cat,
		classifier: classifier,
	}
}

// Analyze runs the full interpretation pipeline for one request.
// The work is bounded, synchronous and CPU-only; ctx is consulted once up
// front so transport-level cancellation is honored before scoring starts.
func (s *TestAnalysisService) Analyze(ctx context.Context, observed domain.ObservedPanels) (*domain.AnalysisResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(observed) == 0 {
		return nil, &domain.InvalidInputError{Field: "observed_panel", Message: "must be a non-empty mapping"}
	}

	results := s.classifier.Score(s.featureVector(observed))

	interpretation := BuildInterpretation(s.catalog, observed)

	confidence, err := Confidence(results.Probabilities)
	if err != nil {
		return nil, &domain.AnalysisError{Stage: "confidence", Err: err}
	}

	recommendations := Recommend(interpretation.Text)

	s.logger.WithFields(logrus.Fields{
		"panels":          len(observed),
		"findings":        len(interpretation.Findings),
		"recommendations": len(recommendations),
		"confidence":      confidence,
		"model_fallback":  s.classifier.FallbackActive(),
	}).Info("Completed test result analysis")

	return &domain.AnalysisResponse{
		Results:         *results,
		Interpretation:  interpretation.Text,
		Confidence:      confidence,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Recommendations: recommendations,
		ModelFallback:   s.classifier.FallbackActive(),
	}, nil
}

// featureVector flattens the observed panels into the classifier's feature
// layout: the numeric catalog parameters in declaration order, absent ones
// contributing nothing. Width fitting happens inside the classifier.
func (s *TestAnalysisService) featureVector(observed domain.ObservedPanels) []float64 {
	row := observed.Flatten()
	var features []float64
	for _, name := range s.catalog.NumericParameters() {
		value, ok := row[name]
		if !ok {
			continue
		}
		n, ok := value.AsNumber()
		if !ok {
			continue
		}
		features = append(features, n)
	}
	return features
}
