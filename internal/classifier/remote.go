package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Remote delegates prediction to an external inference endpoint speaking the
// same top_intent/all_probs contract over JSON.
type Remote struct {
	url    string
	client *http.Client
}

type remoteRequest struct {
	Text string `json:"text"`
}

// NewRemote creates a Remote classifier targeting the given endpoint URL.
func NewRemote(url string, timeout time.Duration) *Remote {
	return &Remote{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict posts the text to the inference endpoint and decodes the result.
func (r *Remote) Predict(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(remoteRequest{Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call inference endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("inference endpoint returned %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode inference response: %w", err)
	}

	if result.TopIntent == "" {
		return Result{}, fmt.Errorf("inference endpoint returned no top intent")
	}

	return result, nil
}
