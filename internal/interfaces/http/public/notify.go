package public

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/twotable/twotable-services/api/internal/intake/domain"
)

const notifyAttempts = 3

// notifyApplicationReceived posts a new venue application to the ops webhook.
// Delivery is best effort; a failure is recorded in failed_notifications for
// later replay instead of surfacing to the applicant.
func (h *Handler) notifyApplicationReceived(ctx context.Context, app domain.VenueApplication) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(h.opsWebhookURL) == "" {
		return
	}

	message := buildApplicationMessage(app)
	err := h.sendWebhookWithRetry(ctx, message, notifyAttempts, 200*time.Millisecond)
	if err == nil {
		return
	}
	if h.logger != nil {
		h.logger.Printf("ops webhook delivery failed: %v", err)
	}

	h.persistNotificationFailure(ctx, app, err)
}

func buildApplicationMessage(app domain.VenueApplication) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("New venue application: **%s** (%s)\n", app.Venue, app.City))
	builder.WriteString(fmt.Sprintf("- Contact: %s <%s>\n", app.Contact, app.Email.String()))
	if app.Phone != "" {
		builder.WriteString(fmt.Sprintf("- Phone: %s\n", app.Phone))
	}
	if app.Type != "" {
		builder.WriteString(fmt.Sprintf("- Type: %s\n", app.Type))
	}
	if app.Capacity != "" {
		builder.WriteString(fmt.Sprintf("- Capacity: %s\n", app.Capacity))
	}
	if app.Notes != "" {
		builder.WriteString(fmt.Sprintf("- Notes: %s\n", app.Notes))
	}
	return builder.String()
}

func (h *Handler) sendWebhookWithRetry(ctx context.Context, text string, attempts int, delay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if lastErr = h.sendWebhookMessage(ctx, text); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (h *Handler) sendWebhookMessage(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]any{"content": text})
	if err != nil {
		return fmt.Errorf("failed to build webhook payload: %w", err)
	}

	timeout := h.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, h.opsWebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("webhook responded with status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}

	return nil
}

func (h *Handler) persistNotificationFailure(ctx context.Context, app domain.VenueApplication, sendErr error) {
	if h.failedNotifications == nil {
		return
	}

	doc := bson.M{
		"target": "ops_webhook",
		"payload": bson.M{
			"applicationId": app.ID,
			"venue":         app.Venue,
			"city":          app.City,
			"contact":       app.Contact,
			"email":         app.Email.String(),
		},
		"error":       sendErr.Error(),
		"attempts":    notifyAttempts,
		"status":      "pending",
		"createdAt":   time.Now().UTC(),
		"lastTriedAt": time.Now().UTC(),
	}
	if _, err := h.failedNotifications.InsertOne(ctx, doc); err != nil && h.logger != nil {
		h.logger.Printf("failed to persist notification failure: %v", err)
	}
}
