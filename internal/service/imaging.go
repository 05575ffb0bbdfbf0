package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/domain"
	"github.com/neurolab-analysis-server/internal/model"
)

// imagingGrid is the side length of the grayscale grid fed to the
// per-modality networks (16x16 = the networks' 256-wide input).
const imagingGrid = 16

// imagingLabels maps a modality to its two class labels, indexed by the
// network's predicted class.
var imagingLabels = map[string][2]string{
	"xray": {"Normal", "Abnormal"},
	"mri":  {"No significant findings", "Abnormal findings detected"},
	"ct":   {"Normal scan", "Abnormalities detected"},
}

// ImagingAnalysisService classifies a medical image for one modality. It
// only decodes the upload, scales intensities onto a fixed grid and runs a
// forward pass; there is no custom imaging algorithm.
type ImagingAnalysisService struct {
	logger   *logrus.Logger
	modality string
	network  *model.Network
	source   model.Source
}

// NewImagingAnalysisService loads the weight file for the modality,
// falling back to an untrained network when none exists.
func NewImagingAnalysisService(modality, modelPath string, logger *logrus.Logger) (*ImagingAnalysisService, error) {
	if _, ok := imagingLabels[modality]; !ok {
		return nil, &domain.InvalidInputError{Field: "modality", Message: fmt.Sprintf("unsupported modality %q", modality)}
	}

	result, err := model.Load(modelPath, model.ImagingLayerSizes, logger)
	if err != nil {
		return nil, err
	}

	return &ImagingAnalysisService{
		logger:   logger,
		modality: modality,
		network:  result.Network,
		source:   result.Source,
	}, nil
}

// Modality returns the modality this service scores.
func (s *ImagingAnalysisService) Modality() string {
	return s.modality
}

// Analyze decodes the uploaded image and returns the modality-specific
// classification with the top-class probability as confidence.
func (s *ImagingAnalysisService) Analyze(ctx context.Context, upload io.Reader) (*domain.ImagingResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(upload)
	if err != nil {
		return nil, &domain.AnalysisError{Stage: "image read", Err: err}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.InvalidInputError{Field: "file", Message: fmt.Sprintf("cannot decode image: %v", err)}
	}

	probs := model.Softmax(s.network.Forward(grayscaleGrid(img)))
	prediction := model.Argmax(probs)
	labels := imagingLabels[s.modality]

	s.logger.WithFields(logrus.Fields{
		"modality":       s.modality,
		"format":         format,
		"prediction":     prediction,
		"confidence":     probs[prediction],
		"model_fallback": s.source == model.SourceFallback,
	}).Info("Completed imaging analysis")

	return &domain.ImagingResponse{
		Result:     labels[prediction],
		Confidence: probs[prediction],
		Modality:   s.modality,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// grayscaleGrid samples the image onto a fixed grid of intensities scaled
// to [0, 1].
func grayscaleGrid(img image.Image) []float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	features := make([]float64, imagingGrid*imagingGrid)

	for gy := 0; gy < imagingGrid; gy++ {
		for gx := 0; gx < imagingGrid; gx++ {
			x := bounds.Min.X + gx*width/imagingGrid
			y := bounds.Min.Y + gy*height/imagingGrid
			r, g, b, _ := img.At(x, y).RGBA()
			// Luma weights over 16-bit channel values.
			gray := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			features[gy*imagingGrid+gx] = gray / 65535.0
		}
	}
	return features
}
