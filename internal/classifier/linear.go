package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// linearArtifact is the serialized form of a bag-of-words linear model.
// Vocabulary maps a term to one weight per label; Bias holds one value per label.
type linearArtifact struct {
	Labels     []string             `json:"labels"`
	Vocabulary map[string][]float64 `json:"vocabulary"`
	Bias       []float64            `json:"bias"`
}

// Linear is a bag-of-words linear classifier with softmax output, loaded from
// a JSON artifact produced by the training pipeline.
type Linear struct {
	labels     []string
	vocabulary map[string][]float64
	bias       []float64
}

// NewLinear parses a linear model artifact.
func NewLinear(artifact []byte) (*Linear, error) {
	var a linearArtifact
	if err := json.Unmarshal(artifact, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	if len(a.Labels) == 0 {
		return nil, fmt.Errorf("model artifact defines no labels")
	}
	if len(a.Bias) != 0 && len(a.Bias) != len(a.Labels) {
		return nil, fmt.Errorf("bias length %d does not match %d labels", len(a.Bias), len(a.Labels))
	}
	for term, weights := range a.Vocabulary {
		if len(weights) != len(a.Labels) {
			return nil, fmt.Errorf("term %q has %d weights, want %d", term, len(weights), len(a.Labels))
		}
	}

	if a.Bias == nil {
		a.Bias = make([]float64, len(a.Labels))
	}

	return &Linear{
		labels:     a.Labels,
		vocabulary: a.Vocabulary,
		bias:       a.Bias,
	}, nil
}

// Predict scores the text against every label and returns the softmax
// distribution with the highest-probability label on top.
func (l *Linear) Predict(_ context.Context, text string) (Result, error) {
	scores := make([]float64, len(l.labels))
	copy(scores, l.bias)

	for _, term := range strings.Fields(strings.ToLower(text)) {
		weights, ok := l.vocabulary[strings.Trim(term, ".,!?;:\"'()")]
		if !ok {
			continue
		}
		for i, w := range weights {
			scores[i] += w
		}
	}

	probs := softmax(scores)

	result := Result{
		TopIntent: l.labels[0],
		AllProbs:  make(map[string]float64, len(l.labels)),
	}

	top := probs[0]
	for i, label := range l.labels {
		result.AllProbs[label] = probs[i]
		if probs[i] > top {
			top = probs[i]
			result.TopIntent = label
		}
	}

	return result, nil
}

// softmax shifts by the max score for numerical stability.
func softmax(scores []float64) []float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
