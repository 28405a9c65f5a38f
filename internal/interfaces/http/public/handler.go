package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	intakeapp "github.com/twotable/twotable-services/api/internal/intake/application"
)

// Handler wires the public intake endpoints to application services.
type Handler struct {
	logger              *log.Logger
	waitlist            intakeapp.WaitlistService
	contact             intakeapp.ContactService
	applications        intakeapp.ApplicationService
	daterSurveys        intakeapp.DaterSurveyService
	httpClient          *http.Client
	opsWebhookURL       string
	failedNotifications *mongo.Collection
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger              *log.Logger
	Waitlist            intakeapp.WaitlistService
	Contact             intakeapp.ContactService
	Applications        intakeapp.ApplicationService
	DaterSurveys        intakeapp.DaterSurveyService
	HTTPClient          *http.Client
	OpsWebhookURL       string
	FailedNotifications *mongo.Collection
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:              cfg.Logger,
		waitlist:            cfg.Waitlist,
		contact:             cfg.Contact,
		applications:        cfg.Applications,
		daterSurveys:        cfg.DaterSurveys,
		httpClient:          cfg.HTTPClient,
		opsWebhookURL:       cfg.OpsWebhookURL,
		failedNotifications: cfg.FailedNotifications,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/waitlist", h.waitlistJoinHandler())
	r.Get("/waitlist/count", h.waitlistCountHandler())
	r.Get("/waitlist", h.waitlistListHandler())
	r.Post("/contact", h.contactSubmitHandler())
	r.Get("/contact/{id}", h.contactDetailHandler())
	r.Get("/contact", h.contactListHandler())
	r.Post("/venue-application", h.applicationSubmitHandler())
	r.Get("/venue-application/{id}", h.applicationDetailHandler())
	r.Get("/venue-applications", h.applicationListHandler())
	r.Post("/dater-survey", h.daterSurveySubmitHandler())
}
