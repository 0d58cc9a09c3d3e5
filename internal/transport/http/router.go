package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"venturescope/internal/config"
	custommw "venturescope/internal/middleware"
	"venturescope/internal/services"
	"venturescope/internal/websocket"
)

// Dependencies collects everything the router mounts.
type Dependencies struct {
	Analysis  *services.AnalysisService
	Narrative *services.NarrativeService
	Research  *services.ResearchService
	Hub       *websocket.Hub
	Metrics   http.Handler
	Logger    *slog.Logger
	Server    config.ServerConfig
	Export    config.ExportConfig
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(deps Dependencies) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	if deps.Server.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(deps.Server.RateLimit.RPS, deps.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	health := NewHealthHandler()
	analysis := NewAnalysisHandler(deps.Analysis, logger, deps.Export.Product, deps.Server.MaxUploadBytes)
	narrative := NewNarrativeHandler(deps.Analysis, deps.Narrative, deps.Research, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.HealthCheck)
		r.Get("/version", health.Version)

		r.Post("/analysis", analysis.Create)
		r.Get("/analysis/{id}", analysis.Get)
		r.Get("/analysis/{id}/export", analysis.Export)

		r.Post("/narrative/company", narrative.Company)
		r.Post("/narrative/investor", narrative.Investor)
		r.Post("/research", narrative.Research)
	})

	if deps.Hub != nil {
		r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
			websocket.ServeWS(deps.Hub, w, req, logger)
		})
	}
	if deps.Metrics != nil {
		r.Get("/metrics", deps.Metrics.ServeHTTP)
	}

	return r
}
