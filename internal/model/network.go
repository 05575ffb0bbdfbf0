// Package model wraps the pretrained scoring networks: weight loading with
// an explicit fallback result, feature standardization from precomputed
// population statistics, and the inference forward pass.
package model

import (
	"fmt"
	"math"
	"math/rand"
)

// Layer is one fully connected layer. Weights are row-major: one row of
// input weights per output unit.
type Layer struct {
	Inputs  int         `json:"inputs"`
	Outputs int         `json:"outputs"`
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

// Network is a feed-forward network with ReLU between layers and raw
// logits at the output. Forward passes never mutate the weights, so a
// loaded network is safe for concurrent inference.
type Network struct {
	Layers []Layer `json:"layers"`
}

// TestAnalysisLayerSizes is the test-analysis topology: a 50-wide feature
// vector scored into 2 classes.
var TestAnalysisLayerSizes = []int{50, 128, 64, 32, 2}

// ImagingLayerSizes is the imaging topology: a 16x16 grayscale grid scored
// into 2 classes.
var ImagingLayerSizes = []int{256, 64, 32, 2}

// NewRandom builds a freshly initialized, untrained network with the given
// layer sizes. Scores from it are meaningless; it exists only as the
// documented fallback when no weight file is available.
func NewRandom(sizes []int, seed int64) *Network {
	rng := rand.New(rand.NewSource(seed))
	n := &Network{Layers: make([]Layer, 0, len(sizes)-1)}
	for i := 0; i < len(sizes)-1; i++ {
		in, out := sizes[i], sizes[i+1]
		scale := 1.0 / math.Sqrt(float64(in))
		layer := Layer{
			Inputs:  in,
			Outputs: out,
			Weights: make([][]float64, out),
			Biases:  make([]float64, out),
		}
		for o := 0; o < out; o++ {
			row := make([]float64, in)
			for j := range row {
				row[j] = (rng.Float64()*2 - 1) * scale
			}
			layer.Weights[o] = row
		}
		n.Layers = append(n.Layers, layer)
	}
	return n
}

// Validate checks that layer shapes are internally consistent and chain
// together.
func (n *Network) Validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	for i, layer := range n.Layers {
		if len(layer.Weights) != layer.Outputs {
			return fmt.Errorf("layer %d: expected %d weight rows, got %d", i, layer.Outputs, len(layer.Weights))
		}
		if len(layer.Biases) != layer.Outputs {
			return fmt.Errorf("layer %d: expected %d biases, got %d", i, layer.Outputs, len(layer.Biases))
		}
		for o, row := range layer.Weights {
			if len(row) != layer.Inputs {
				return fmt.Errorf("layer %d, unit %d: expected %d weights, got %d", i, o, layer.Inputs, len(row))
			}
		}
		if i > 0 && layer.Inputs != n.Layers[i-1].Outputs {
			return fmt.Errorf("layer %d: input width %d does not match previous output width %d",
				i, layer.Inputs, n.Layers[i-1].Outputs)
		}
	}
	return nil
}

// InputWidth returns the expected feature vector width.
func (n *Network) InputWidth() int {
	return n.Layers[0].Inputs
}

// OutputWidth returns the number of classes.
func (n *Network) OutputWidth() int {
	return n.Layers[len(n.Layers)-1].Outputs
}

// Forward runs one inference pass and returns the output logits. The input
// must already match InputWidth.
func (n *Network) Forward(features []float64) []float64 {
	activations := features
	for i, layer := range n.Layers {
		out := make([]float64, layer.Outputs)
		for o := 0; o < layer.Outputs; o++ {
			sum := layer.Biases[o]
			row := layer.Weights[o]
			for j, x := range activations {
				sum += row[j] * x
			}
			out[o] = sum
		}
		if i < len(n.Layers)-1 {
			for o := range out {
				if out[o] < 0 {
					out[o] = 0
				}
			}
		}
		activations = out
	}
	return activations
}

// Softmax converts logits into a probability distribution. Shifting by the
// max keeps the exponentials finite.
func Softmax(logits []float64) []float64 {
	max := logits[0]
	for _, l := range logits[1:] {
		if l > max {
			max = l
		}
	}
	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(l - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Argmax returns the index of the largest probability.
func Argmax(probs []float64) int {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}
