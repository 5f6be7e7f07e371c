package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/augurd/augur/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusOK, map[string]string{"id": "abc"})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("id = %q, want abc", body["id"])
	}
}

func TestRespondError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("writes the public message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handlers.RespondError(rec, logger, http.StatusForbidden,
			errors.New("invalid or inactive credentials"),
			"invalid or inactive credentials",
		)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["error"] != "invalid or inactive credentials" {
			t.Errorf("error = %q, want message echoed", body["error"])
		}
	})

	t.Run("wrapped chain never reaches the body", func(t *testing.T) {
		cause := fmt.Errorf("insert prediction: dial tcp 10.0.0.5:5432: connect: connection refused")

		rec := httptest.NewRecorder()
		handlers.RespondError(rec, logger, http.StatusInternalServerError, cause, "prediction log write failed")

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["error"] != "prediction log write failed" {
			t.Errorf("error = %q, want public message only", body["error"])
		}
		if strings.Contains(rec.Body.String(), "dial tcp") {
			t.Error("connection detail leaked into response body")
		}
	})
}
