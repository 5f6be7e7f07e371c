package predictions

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/augurd/augur/internal/auth"
	"github.com/augurd/augur/pkg/handlers"
	"github.com/augurd/augur/pkg/pagination"
	"github.com/augurd/augur/pkg/routes"
)

// Handler provides HTTP endpoints for prediction operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "predictions"),
		pagination: pagination,
	}
}

// Routes returns the route group for prediction endpoints. The group is
// mounted by the module that owns the /predict prefix.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{$}", Handler: h.Predict},
			{Method: "GET", Pattern: "/{$}", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
		},
	}
}

// Predict decodes the request text, runs the pipeline under the owner resolved
// by the auth middleware, and returns the persisted record.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrOwnerMissing, PublicMessage(ErrOwnerMissing))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyText, PublicMessage(ErrEmptyText))
		return
	}

	record, err := h.sys.Predict(r.Context(), req.Text, owner)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err, PublicMessage(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}

// List returns a paginated page of the prediction log with optional
// owner and model query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err, PublicMessage(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single logged prediction by its id path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	record, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err, PublicMessage(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}
