package service

import (
	"github.com/neurolab-analysis-server/internal/domain"
)

// Confidence reduces a classifier probability matrix to a single score in
// [0, 1]: the mean, across rows, of each row's maximum class probability.
// For a single prediction this is simply the top-class probability.
func Confidence(probabilities [][]float64) (float64, error) {
	if len(probabilities) == 0 {
		return 0, &domain.InvalidInputError{Field: "probabilities", Message: "probability matrix is empty"}
	}

	var sum float64
	for _, row := range probabilities {
		if len(row) == 0 {
			return 0, &domain.InvalidInputError{Field: "probabilities", Message: "probability row is empty"}
		}
		max := row[0]
		for _, p := range row[1:] {
			if p > max {
				max = p
			}
		}
		sum += max
	}
	return sum / float64(len(probabilities)), nil
}
