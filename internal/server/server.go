package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/twotable/twotable-services/api/internal/config"
	coverageapp "github.com/twotable/twotable-services/api/internal/coverage/application"
	mongodoc "github.com/twotable/twotable-services/api/internal/infrastructure/mongo"
	intakeapp "github.com/twotable/twotable-services/api/internal/intake/application"
	adminhttp "github.com/twotable/twotable-services/api/internal/interfaces/http/admin"
	publichttp "github.com/twotable/twotable-services/api/internal/interfaces/http/public"
)

// Server is the composition root: it wires repositories, application
// services and HTTP handlers together and manages the server lifecycle.
type Server struct {
	logger               *log.Logger
	client               *mongo.Client
	database             *mongo.Database
	coverageService      coverageapp.CoverageService
	surveyCommandService coverageapp.SurveyCommandService
	waitlistService      intakeapp.WaitlistService
	contactService       intakeapp.ContactService
	applicationService   intakeapp.ApplicationService
	daterSurveyService   intakeapp.DaterSurveyService
	httpClient           *http.Client
	opsWebhookURL        string
	failedNotifications  *mongo.Collection
	indexCollections     indexTargets
	addr                 string
	allowedOrigins       []string
}

type indexTargets struct {
	venues   *mongo.Collection
	surveys  *mongo.Collection
	waitlist *mongo.Collection
	contact  *mongo.Collection
}

// New receives Config and a connected Mongo client and assembles the
// application services and handlers into a runnable Server.
func New(cfg config.Config, client *mongo.Client) *Server {
	srv := &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		httpClient:     &http.Client{Timeout: cfg.OpsWebhookTimeout},
		opsWebhookURL:  strings.TrimSpace(cfg.OpsWebhookURL),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
	srv.failedNotifications = srv.database.Collection(cfg.FailedNotificationCollection)

	venueRepo := mongodoc.NewVenueRepository(srv.database, cfg.VenueCollection)
	surveyRepo := mongodoc.NewSurveyRepository(srv.database, cfg.VenueSurveyCollection)
	srv.coverageService = coverageapp.NewCoverageService(venueRepo, surveyRepo)
	srv.surveyCommandService = coverageapp.NewSurveyCommandService(venueRepo, surveyRepo)

	waitlistRepo := mongodoc.NewWaitlistRepository(srv.database, cfg.WaitlistCollection)
	srv.waitlistService = intakeapp.NewWaitlistService(waitlistRepo)
	contactRepo := mongodoc.NewContactRepository(srv.database, cfg.ContactCollection)
	srv.contactService = intakeapp.NewContactService(contactRepo)
	applicationRepo := mongodoc.NewApplicationRepository(srv.database, cfg.ApplicationCollection)
	srv.applicationService = intakeapp.NewApplicationService(applicationRepo)
	daterSurveyRepo := mongodoc.NewDaterSurveyRepository(srv.database, cfg.DaterSurveyCollection)
	srv.daterSurveyService = intakeapp.NewDaterSurveyService(daterSurveyRepo)

	srv.indexCollections = indexTargets{
		venues:   srv.database.Collection(cfg.VenueCollection),
		surveys:  srv.database.Collection(cfg.VenueSurveyCollection),
		waitlist: srv.database.Collection(cfg.WaitlistCollection),
		contact:  srv.database.Collection(cfg.ContactCollection),
	}

	return srv
}

// Run assembles routing and middleware and serves until shutdown.
// Infrastructure concerns only; no domain logic lives here.
func (s *Server) Run() error {
	if err := s.ensureIndexes(context.Background()); err != nil {
		s.logger.Printf("index bootstrap failed: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/", s.rootHandler())
	router.Get("/health", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:              s.logger,
		Waitlist:            s.waitlistService,
		Contact:             s.contactService,
		Applications:        s.applicationService,
		DaterSurveys:        s.daterSurveyService,
		HTTPClient:          s.httpClient,
		OpsWebhookURL:       s.opsWebhookURL,
		FailedNotifications: s.failedNotifications,
	})
	router.Route("/api", publicHandler.Register)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:   s.logger,
		Coverage: s.coverageService,
		Surveys:  s.surveyCommandService,
	})
	router.Route("/admin", adminHandler.Register)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// ensureIndexes creates the indexes the repositories rely on. Failures are
// reported but do not abort startup: an operator can create them by hand.
func (s *Server) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var errs []error

	create := func(coll *mongo.Collection, model mongo.IndexModel) {
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			errs = append(errs, err)
		}
	}

	create(s.indexCollections.venues, mongo.IndexModel{
		Keys:    bson.D{{Key: "osm_type", Value: 1}, {Key: "osm_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	create(s.indexCollections.surveys, mongo.IndexModel{
		Keys:    bson.D{{Key: "venueId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	create(s.indexCollections.waitlist, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	create(s.indexCollections.contact, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}},
	})

	return errors.Join(errs...)
}

// withCORS returns middleware adding CORS headers for allowed origins.
// Entries may contain a single leading wildcard, e.g. https://*.example.com.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	var wildcards []string
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		if strings.Contains(origin, "*") {
			wildcards = append(wildcards, origin)
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed, wildcards)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}, wildcards []string) bool {
	if _, ok := allowed[origin]; ok {
		return true
	}
	for _, pattern := range wildcards {
		if matchWildcardOrigin(origin, pattern) {
			return true
		}
	}
	return false
}

// matchWildcardOrigin matches patterns of the form scheme://*.domain against
// a concrete origin. Only one wildcard, in the host's leftmost label, is
// supported.
func matchWildcardOrigin(origin, pattern string) bool {
	idx := strings.Index(pattern, "*")
	if idx < 0 {
		return origin == pattern
	}
	prefix := pattern[:idx]
	suffix := pattern[idx+1:]
	if !strings.HasPrefix(origin, prefix) || !strings.HasSuffix(origin, suffix) {
		return false
	}
	label := origin[len(prefix) : len(origin)-len(suffix)]
	return label != "" && !strings.ContainsAny(label, "./")
}

func (s *Server) rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"name":    "TwoTable API",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": map[string]string{
				"health":   "/health",
				"waitlist": "/api/waitlist",
				"contact":  "/api/contact",
			},
		})
	}
}

// healthHandler reports Mongo connectivity for monitoring probes.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.logger.Printf("health check failed: %v", err)
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "degraded",
				"database": "disconnected",
				"service":  "TwoTable API",
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":   "healthy",
			"database": "connected",
			"service":  "TwoTable API",
		})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("failed to encode JSON response: %v", err)
	}
}

// shutdown disconnects the Mongo client with a timeout so process exit does
// not leak connections.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("error disconnecting MongoDB: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals to drive graceful
// shutdown.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("server terminated abnormally: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("received signal %s, shutting down.", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("error during server shutdown: %v", err)
		}
	}

	srv.shutdown(context.Background())
}
