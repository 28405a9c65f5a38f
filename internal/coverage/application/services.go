package application

import (
	"context"
	"errors"
	"time"

	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

var (
	// ErrVenueNotFound signals a venue identifier that resolves to nothing.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrInvalidVenueID signals a malformed venue identifier.
	ErrInvalidVenueID = errors.New("invalid venue id")
	// ErrInvalidStatus signals a survey status outside in_progress/completed.
	ErrInvalidStatus = errors.New("invalid survey status")
)

// HierarchyFilter narrows a venue snapshot to a prefix of the
// city/zone/postcode hierarchy. Empty fields match everything; the
// domain.UnknownBucket label matches venues whose field is absent.
type HierarchyFilter struct {
	City     string
	Zone     string
	Postcode string
}

// VenueRepository is the venue store collaborator.
type VenueRepository interface {
	Snapshot(ctx context.Context, filter HierarchyFilter) ([]domain.Venue, error)
	FindByID(ctx context.Context, id string) (*domain.Venue, error)
	MarkSurveyed(ctx context.Context, id string, at time.Time) error
}

// SurveyRepository is the survey store collaborator.
type SurveyRepository interface {
	StatusByVenue(ctx context.Context, venueIDs []string) (map[string]domain.SurveyStatus, error)
	UpsertByVenue(ctx context.Context, survey *domain.Survey) error
}

// CoverageService computes roll-up statistics and drill-down listings over
// the venue store.
type CoverageService interface {
	ListCities(ctx context.Context) ([]domain.CityCount, error)
	ListZones(ctx context.Context, city string) ([]domain.ZoneRollup, error)
	ListPostcodes(ctx context.Context, city, zone string) ([]domain.PostcodeRollup, error)
	ListVenues(ctx context.Context, city, zone, postcode string) ([]domain.VenueSummary, error)
	Summary(ctx context.Context, city string) (domain.Rollup, error)
	Dashboard(ctx context.Context, city string) (domain.Dashboard, error)
}

// SubmitSurveyCommand contains the inputs of a survey submission.
type SubmitSurveyCommand struct {
	VenueID  string
	Surveyor string
	Status   string
	Answers  map[string]any
}

// SurveyCommandService handles survey submissions.
type SurveyCommandService interface {
	Submit(ctx context.Context, cmd SubmitSurveyCommand) (*domain.Survey, error)
}
