// Package classifier defines the text-classification capability consumed by the
// prediction pipeline, along with the loadable implementations and the
// process-wide registry populated at startup.
package classifier

import "context"

// Result is a single model's opinion on a text: the highest-probability label
// and the full label probability distribution.
type Result struct {
	TopIntent string             `json:"top_intent"`
	AllProbs  map[string]float64 `json:"all_probs"`
}

// Classifier exposes single-text-in, label-and-distribution-out prediction.
// Implementations must be stateless from the caller's perspective and safe for
// concurrent use across requests.
type Classifier interface {
	Predict(ctx context.Context, text string) (Result, error)
}
