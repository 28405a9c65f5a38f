package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	VenueCollection              string
	VenueSurveyCollection        string
	WaitlistCollection           string
	ContactCollection            string
	ApplicationCollection        string
	DaterSurveyCollection        string
	FailedNotificationCollection string
	Timeout                      time.Duration
	Timezone                     string
	ServerLog                    *log.Logger
	AllowedOrigins               []string
	OpsWebhookURL                string
	OpsWebhookTimeout            time.Duration
}

var defaultAllowedOrigins = []string{
	"https://twotable.co.uk",
	"https://www.twotable.co.uk",
	"https://*.twotable.co.uk",
	"http://localhost:3000",
	"http://localhost:5173",
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	opsWebhookURL := strings.TrimSpace(os.Getenv("OPS_WEBHOOK_URL"))

	opsWebhookTimeout := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPS_WEBHOOK_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			opsWebhookTimeout = parsed
		}
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", defaultAllowedOrigins)

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "twotable"),
		VenueCollection:              envOrDefault("VENUE_COLLECTION", "venues"),
		VenueSurveyCollection:        envOrDefault("VENUE_SURVEY_COLLECTION", "venue_surveys"),
		WaitlistCollection:           envOrDefault("WAITLIST_COLLECTION", "waitlist"),
		ContactCollection:            envOrDefault("CONTACT_COLLECTION", "contact_submissions"),
		ApplicationCollection:        envOrDefault("APPLICATION_COLLECTION", "venue_applications"),
		DaterSurveyCollection:        envOrDefault("DATER_SURVEY_COLLECTION", "dater_surveys"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		Timeout:                      timeout,
		Timezone:                     envOrDefault("TIMEZONE", "Europe/London"),
		ServerLog:                    log.New(os.Stdout, "[twotable-api] ", log.LstdFlags|log.Lshortfile),
		AllowedOrigins:               allowedOrigins,
		OpsWebhookURL:                opsWebhookURL,
		OpsWebhookTimeout:            opsWebhookTimeout,
	}

	cfg.ServerLog.Printf("loaded config: db=%q origins=%d webhook=%t", cfg.MongoDatabase, len(allowedOrigins), opsWebhookURL != "")

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
