package application

import (
	"context"

	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

// coverageService implements CoverageService. Every read takes one snapshot
// of the matching venues plus the survey status join, and derives all levels
// from that snapshot in memory, so the counts of a single response can never
// disagree with each other when ingestion runs concurrently.
type coverageService struct {
	venues  VenueRepository
	surveys SurveyRepository
}

// NewCoverageService constructs the aggregator over the two store
// collaborators.
func NewCoverageService(venues VenueRepository, surveys SurveyRepository) CoverageService {
	return &coverageService{venues: venues, surveys: surveys}
}

// snapshot loads the venues matching filter together with their survey
// statuses.
func (s *coverageService) snapshot(ctx context.Context, filter HierarchyFilter) ([]domain.Venue, map[string]domain.SurveyStatus, error) {
	venues, err := s.venues.Snapshot(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	if len(venues) == 0 {
		return venues, nil, nil
	}

	ids := make([]string, 0, len(venues))
	for _, venue := range venues {
		ids = append(ids, venue.ID)
	}
	statuses, err := s.surveys.StatusByVenue(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return venues, statuses, nil
}

func (s *coverageService) ListCities(ctx context.Context) ([]domain.CityCount, error) {
	venues, err := s.venues.Snapshot(ctx, HierarchyFilter{})
	if err != nil {
		return nil, err
	}
	return domain.CountCities(venues), nil
}

func (s *coverageService) ListZones(ctx context.Context, city string) ([]domain.ZoneRollup, error) {
	venues, statuses, err := s.snapshot(ctx, HierarchyFilter{City: city})
	if err != nil {
		return nil, err
	}
	return domain.RollupZones(venues, statuses), nil
}

func (s *coverageService) ListPostcodes(ctx context.Context, city, zone string) ([]domain.PostcodeRollup, error) {
	venues, statuses, err := s.snapshot(ctx, HierarchyFilter{City: city, Zone: zone})
	if err != nil {
		return nil, err
	}
	return domain.RollupPostcodes(venues, statuses), nil
}

func (s *coverageService) ListVenues(ctx context.Context, city, zone, postcode string) ([]domain.VenueSummary, error) {
	venues, statuses, err := s.snapshot(ctx, HierarchyFilter{City: city, Zone: zone, Postcode: postcode})
	if err != nil {
		return nil, err
	}
	return domain.SummarizeVenues(venues, statuses), nil
}

func (s *coverageService) Summary(ctx context.Context, city string) (domain.Rollup, error) {
	venues, statuses, err := s.snapshot(ctx, HierarchyFilter{City: city})
	if err != nil {
		return domain.Rollup{}, err
	}
	return domain.Summarize(venues, statuses), nil
}

func (s *coverageService) Dashboard(ctx context.Context, city string) (domain.Dashboard, error) {
	venues, statuses, err := s.snapshot(ctx, HierarchyFilter{City: city})
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.BuildDashboard(venues, statuses), nil
}
