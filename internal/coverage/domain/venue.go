package domain

import (
	"fmt"
	"strings"
	"time"
)

// SurveyStatus is the lifecycle state of a venue survey. A venue with no
// survey record is "not_started"; that value is never persisted.
type SurveyStatus string

const (
	StatusNotStarted SurveyStatus = "not_started"
	StatusInProgress SurveyStatus = "in_progress"
	StatusCompleted  SurveyStatus = "completed"
)

// NewSurveyStatus validates a submitted status value.
func NewSurveyStatus(value string) (SurveyStatus, error) {
	switch SurveyStatus(strings.TrimSpace(value)) {
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("invalid survey status: %q", value)
}

// Venue is a discoverable place of business imported from OpenStreetMap.
// The hierarchy fields (city, zone, postcode) are set at ingestion and never
// mutated here; only the survey linkage fields change, as a side effect of
// survey submission.
type Venue struct {
	ID               string
	OSMType          string
	OSMID            int64
	Name             string
	Amenity          string
	City             string
	Zone             string
	Postcode         string
	Email            string
	Website          string
	Phone            string
	Street           string
	HouseNumber      string
	Lat              *float64
	Lon              *float64
	Rating           *float64
	UserRatingsTotal *int
	PriceLevel       *int
	GoogleMapsURI    string
	WebsiteURI       string
	LastSurveyedAt   *time.Time
	PriorityScore    float64
	FetchedAt        time.Time
}

// Survey is one assessment of a venue. There is at most one per venue;
// resubmission overwrites content and status in place (last write wins).
type Survey struct {
	ID        string
	VenueID   string
	Surveyor  string
	Status    SurveyStatus
	Answers   map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
