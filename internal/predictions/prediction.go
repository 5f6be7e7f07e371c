// Package predictions implements the prediction domain for augur: fan-out
// inference across the loaded classifiers, assembly of the logged record, and
// exactly-once persistence with the generated identifier returned to the caller.
package predictions

import "github.com/augurd/augur/internal/classifier"

// Request is the caller input to the predict endpoint.
type Request struct {
	Text string `json:"text"`
}

// Record is the unit persisted and returned. ID is empty until persistence
// succeeds; Timestamp is server-assigned UTC epoch seconds, never taken from
// the caller.
type Record struct {
	ID          string                       `json:"id,omitempty"`
	Text        string                       `json:"text"`
	Owner       string                       `json:"owner"`
	Predictions map[string]classifier.Result `json:"predictions"`
	Timestamp   int64                        `json:"timestamp"`
}
