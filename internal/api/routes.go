package api

import (
	"net/http"

	"github.com/augurd/augur/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Predictions.Handler().Routes(),
	)
}
