package predictions

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/augurd/augur/internal/classifier"
	"github.com/augurd/augur/pkg/repository"
)

// Filters contains optional filtering criteria for prediction log queries.
// Nil fields are ignored. Owner matches exactly; Model matches records whose
// predictions mapping contains the named model.
type Filters struct {
	Owner *string `json:"owner,omitempty"`
	Model *string `json:"model,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if o := values.Get("owner"); o != "" {
		f.Owner = &o
	}

	if m := values.Get("model"); m != "" {
		f.Model = &m
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	var id uuid.UUID
	var predictionsRaw []byte

	err := s.Scan(
		&id,
		&r.Text,
		&r.Owner,
		&predictionsRaw,
		&r.Timestamp,
	)

	if err != nil {
		return r, err
	}

	r.ID = id.String()

	if len(predictionsRaw) > 0 {
		if err := json.Unmarshal(predictionsRaw, &r.Predictions); err != nil {
			return r, fmt.Errorf("unmarshal predictions: %w", err)
		}
	}

	if r.Predictions == nil {
		r.Predictions = map[string]classifier.Result{}
	}

	return r, nil
}
