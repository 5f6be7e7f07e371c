package predictions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/augurd/augur/internal/auth"
	"github.com/augurd/augur/internal/classifier"
	"github.com/augurd/augur/internal/predictions"
	"github.com/augurd/augur/pkg/pagination"
)

type mockSystem struct {
	predictFn func(ctx context.Context, text, owner string) (*predictions.Record, error)
	listFn    func(ctx context.Context, page pagination.PageRequest, filters predictions.Filters) (*pagination.PageResult[predictions.Record], error)
	findFn    func(ctx context.Context, id string) (*predictions.Record, error)
}

func (m *mockSystem) Handler() *predictions.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) Predict(ctx context.Context, text, owner string) (*predictions.Record, error) {
	return m.predictFn(ctx, text, owner)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters predictions.Filters) (*pagination.PageResult[predictions.Record], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id string) (*predictions.Record, error) {
	return m.findFn(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(sys *mockSystem) *predictions.Handler {
	return predictions.NewHandler(
		sys,
		testLogger(),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *predictions.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

// setupAuthedMux wraps the handler mux with the real auth middleware so
// requests carry a resolved owner, the way the module serves them.
func setupAuthedMux(h *predictions.Handler, owner string) http.Handler {
	mw := auth.Middleware(auth.AlwaysAllow{Owner: owner}, testLogger())
	return mw(setupMux(h))
}

func sampleRecord() predictions.Record {
	return predictions.Record{
		ID:    "550e8400-e29b-41d4-a716-446655440000",
		Text:  "book a table for two",
		Owner: "alice",
		Predictions: map[string]classifier.Result{
			"intent": {
				TopIntent: "reservation",
				AllProbs:  map[string]float64{"reservation": 0.8, "greeting": 0.2},
			},
		},
		Timestamp: 1756100000,
	}
}

func TestHandlerPredict(t *testing.T) {
	t.Run("returns persisted record", func(t *testing.T) {
		record := sampleRecord()
		sys := &mockSystem{
			predictFn: func(_ context.Context, text, owner string) (*predictions.Record, error) {
				record.Text = text
				record.Owner = owner
				return &record, nil
			},
		}
		mux := setupAuthedMux(newTestHandler(sys), "alice")

		body := bytes.NewBufferString(`{"text": "book a table for two"}`)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", body)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var got predictions.Record
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID == "" {
			t.Error("response missing id")
		}
		if got.Owner != "alice" {
			t.Errorf("owner = %q, want alice", got.Owner)
		}
		if got.Predictions["intent"].TopIntent != "reservation" {
			t.Errorf("top intent = %q, want reservation", got.Predictions["intent"].TopIntent)
		}
	})

	t.Run("rejects empty text", func(t *testing.T) {
		called := false
		sys := &mockSystem{
			predictFn: func(_ context.Context, _, _ string) (*predictions.Record, error) {
				called = true
				return nil, nil
			},
		}
		mux := setupAuthedMux(newTestHandler(sys), "alice")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"text": "   "}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if called {
			t.Error("pipeline invoked for empty text")
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupAuthedMux(newTestHandler(sys), "alice")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{not json`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("fails without resolved owner", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"text": "hello"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("maps pipeline failure to 500", func(t *testing.T) {
		sys := &mockSystem{
			predictFn: func(_ context.Context, _, _ string) (*predictions.Record, error) {
				return nil, predictions.ErrClassifierFailed
			},
		}
		mux := setupAuthedMux(newTestHandler(sys), "alice")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"text": "hello"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("persistence failure body hides driver detail", func(t *testing.T) {
		sys := &mockSystem{
			predictFn: func(_ context.Context, _, _ string) (*predictions.Record, error) {
				return nil, fmt.Errorf("%w: insert prediction: dial tcp 10.0.0.5:5432: connect: connection refused",
					predictions.ErrPersistenceFailed)
			},
		}
		mux := setupAuthedMux(newTestHandler(sys), "alice")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"text": "hello"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["error"] != predictions.ErrPersistenceFailed.Error() {
			t.Errorf("error = %q, want the sentinel message only", body["error"])
		}
	})

	t.Run("classifier failure body hides model cause", func(t *testing.T) {
		sys := &mockSystem{
			predictFn: func(_ context.Context, _, _ string) (*predictions.Record, error) {
				return nil, fmt.Errorf("%w: model intent: inference endpoint returned 502",
					predictions.ErrClassifierFailed)
			},
		}
		mux := setupAuthedMux(newTestHandler(sys), "alice")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"text": "hello"}`))
		mux.ServeHTTP(rec, req)

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["error"] != predictions.ErrClassifierFailed.Error() {
			t.Errorf("error = %q, want the sentinel message only", body["error"])
		}
		if strings.Contains(body["error"], "intent") {
			t.Error("model name leaked into response body")
		}
	})
}

func TestHandlerList(t *testing.T) {
	record := sampleRecord()
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters predictions.Filters) (*pagination.PageResult[predictions.Record], error) {
			if filters.Owner == nil || *filters.Owner != "alice" {
				t.Errorf("owner filter = %v, want alice", filters.Owner)
			}
			result := pagination.NewPageResult([]predictions.Record{record}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}
	mux := setupAuthedMux(newTestHandler(sys), "alice")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/?owner=alice", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[predictions.Record]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("total = %d, want 1", result.Total)
	}
}

func TestHandlerFind(t *testing.T) {
	record := sampleRecord()

	t.Run("returns record by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id string) (*predictions.Record, error) {
				if id != record.ID {
					t.Errorf("id = %q, want %q", id, record.ID)
				}
				return &record, nil
			},
		}
		mux := setupAuthedMux(newTestHandler(sys), "alice")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/"+record.ID, nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("maps unknown id to 404", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, _ string) (*predictions.Record, error) {
				return nil, predictions.ErrNotFound
			},
		}
		mux := setupAuthedMux(newTestHandler(sys), "alice")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/missing", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
