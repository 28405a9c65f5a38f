package admin

import (
	"log"

	"github.com/go-chi/chi/v5"

	coverageapp "github.com/twotable/twotable-services/api/internal/coverage/application"
)

// Handler wires the internal survey dashboard endpoints to application
// services.
type Handler struct {
	logger   *log.Logger
	coverage coverageapp.CoverageService
	surveys  coverageapp.SurveyCommandService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger   *log.Logger
	Coverage coverageapp.CoverageService
	Surveys  coverageapp.SurveyCommandService
}

// NewHandler constructs the admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		coverage: cfg.Coverage,
		surveys:  cfg.Surveys,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/coverage/cities", h.citiesHandler())
	r.Get("/coverage/zones", h.zonesHandler())
	r.Get("/coverage/postcodes", h.postcodesHandler())
	r.Get("/coverage/venues", h.venuesHandler())
	r.Get("/coverage/summary", h.summaryHandler())
	r.Get("/coverage/dashboard", h.dashboardHandler())
	r.Post("/surveys", h.surveySubmitHandler())
}
