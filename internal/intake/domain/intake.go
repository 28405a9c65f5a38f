package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
)

// ApplicationStatusPending is the initial review state of a venue
// application.
const ApplicationStatusPending = "pending_review"

// Email is a validated, lowercased email address.
type Email string

// NewEmail validates and lowercases an email address. Empty input is an
// error: every intake document requires a reachable contact.
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("email is required")
	}
	if len(trimmed) > 254 {
		return "", fmt.Errorf("email too long")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("invalid email: %w", err)
	}
	return Email(strings.ToLower(trimmed)), nil
}

func (e Email) String() string {
	return string(e)
}

// URL is an optional validated link.
type URL string

// NewURL accepts empty input so optional links stay optional.
func NewURL(value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}

// WaitlistEntry is one email on the launch waitlist. Emails are unique;
// re-signup returns the existing entry.
type WaitlistEntry struct {
	ID        string
	Email     Email
	CreatedAt time.Time
}

// ContactSubmission is one message from the contact form.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     Email
	Message   string
	CreatedAt time.Time
}

// VenueApplication is a venue partnership application awaiting review.
type VenueApplication struct {
	ID        string
	Venue     string
	City      string
	Type      string
	Web       URL
	Contact   string
	Role      string
	Email     Email
	Phone     string
	Nights    string
	Capacity  string
	Payout    string
	Notes     string
	Status    string
	CreatedAt time.Time
}

// DaterSurveyResponse is a free-form dater survey submission. Answers are
// opaque to the backend.
type DaterSurveyResponse struct {
	ID        string
	Email     Email
	Answers   map[string]any
	CreatedAt time.Time
}
