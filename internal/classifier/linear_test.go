package classifier_test

import (
	"context"
	"math"
	"testing"

	"github.com/augurd/augur/internal/classifier"
)

func sampleArtifact() []byte {
	return []byte(`{
		"labels": ["greeting", "farewell"],
		"vocabulary": {
			"hello": [2.0, -1.0],
			"hi": [1.5, -0.5],
			"goodbye": [-1.0, 2.0],
			"bye": [-0.5, 1.5]
		},
		"bias": [0.1, -0.1]
	}`)
}

func TestNewLinear(t *testing.T) {
	t.Run("parses valid artifact", func(t *testing.T) {
		if _, err := classifier.NewLinear(sampleArtifact()); err != nil {
			t.Fatalf("parse failed: %v", err)
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		if _, err := classifier.NewLinear([]byte(`{not json`)); err == nil {
			t.Error("expected error for malformed artifact")
		}
	})

	t.Run("rejects artifact without labels", func(t *testing.T) {
		if _, err := classifier.NewLinear([]byte(`{"labels": [], "vocabulary": {}}`)); err == nil {
			t.Error("expected error for empty labels")
		}
	})

	t.Run("rejects mismatched weight lengths", func(t *testing.T) {
		artifact := []byte(`{
			"labels": ["a", "b"],
			"vocabulary": {"term": [1.0]}
		}`)
		if _, err := classifier.NewLinear(artifact); err == nil {
			t.Error("expected error for weight length mismatch")
		}
	})

	t.Run("rejects mismatched bias length", func(t *testing.T) {
		artifact := []byte(`{
			"labels": ["a", "b"],
			"vocabulary": {},
			"bias": [1.0]
		}`)
		if _, err := classifier.NewLinear(artifact); err == nil {
			t.Error("expected error for bias length mismatch")
		}
	})

	t.Run("defaults missing bias to zero", func(t *testing.T) {
		artifact := []byte(`{
			"labels": ["a", "b"],
			"vocabulary": {"term": [1.0, -1.0]}
		}`)
		if _, err := classifier.NewLinear(artifact); err != nil {
			t.Fatalf("parse failed: %v", err)
		}
	})
}

func TestLinearPredict(t *testing.T) {
	model, err := classifier.NewLinear(sampleArtifact())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	t.Run("picks highest scoring label", func(t *testing.T) {
		result, err := model.Predict(context.Background(), "hello hi")
		if err != nil {
			t.Fatalf("predict failed: %v", err)
		}
		if result.TopIntent != "greeting" {
			t.Errorf("top = %q, want greeting", result.TopIntent)
		}

		result, err = model.Predict(context.Background(), "goodbye")
		if err != nil {
			t.Fatalf("predict failed: %v", err)
		}
		if result.TopIntent != "farewell" {
			t.Errorf("top = %q, want farewell", result.TopIntent)
		}
	})

	t.Run("normalizes case and strips punctuation", func(t *testing.T) {
		result, err := model.Predict(context.Background(), "Hello!")
		if err != nil {
			t.Fatalf("predict failed: %v", err)
		}
		if result.TopIntent != "greeting" {
			t.Errorf("top = %q, want greeting", result.TopIntent)
		}
		if result.AllProbs["greeting"] <= result.AllProbs["farewell"] {
			t.Error("punctuated greeting should still outscore farewell")
		}
	})

	t.Run("probabilities sum to one", func(t *testing.T) {
		result, err := model.Predict(context.Background(), "hello goodbye unknown words")
		if err != nil {
			t.Fatalf("predict failed: %v", err)
		}

		var sum float64
		for _, p := range result.AllProbs {
			if p < 0 || p > 1 {
				t.Errorf("probability out of range: %v", p)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("probabilities sum to %v, want 1", sum)
		}
	})

	t.Run("handles text with no known terms", func(t *testing.T) {
		result, err := model.Predict(context.Background(), "completely unrelated input")
		if err != nil {
			t.Fatalf("predict failed: %v", err)
		}
		if len(result.AllProbs) != 2 {
			t.Errorf("probs = %d labels, want 2", len(result.AllProbs))
		}
		if result.TopIntent == "" {
			t.Error("top intent must not be empty")
		}
	})
}
