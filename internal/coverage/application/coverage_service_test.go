package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

type fakeVenueRepo struct {
	venues      []domain.Venue
	snapshotErr error
	findErr     error
	markErr     error

	lastFilter HierarchyFilter
	marked     map[string]time.Time
}

func (f *fakeVenueRepo) Snapshot(_ context.Context, filter HierarchyFilter) ([]domain.Venue, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	f.lastFilter = filter

	matches := func(want, got string) bool {
		if want == "" {
			return true
		}
		if want == domain.UnknownBucket {
			return got == ""
		}
		return want == got
	}

	var out []domain.Venue
	for _, v := range f.venues {
		if matches(filter.City, v.City) && matches(filter.Zone, v.Zone) && matches(filter.Postcode, v.Postcode) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVenueRepo) FindByID(_ context.Context, id string) (*domain.Venue, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, v := range f.venues {
		if v.ID == id {
			venue := v
			return &venue, nil
		}
	}
	return nil, ErrVenueNotFound
}

func (f *fakeVenueRepo) MarkSurveyed(_ context.Context, id string, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	if f.marked == nil {
		f.marked = make(map[string]time.Time)
	}
	f.marked[id] = at
	return nil
}

type fakeSurveyRepo struct {
	statuses  map[string]domain.SurveyStatus
	statusErr error
	upsertErr error

	upserted []*domain.Survey
}

func (f *fakeSurveyRepo) StatusByVenue(_ context.Context, venueIDs []string) (map[string]domain.SurveyStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	out := make(map[string]domain.SurveyStatus)
	for _, id := range venueIDs {
		if status, ok := f.statuses[id]; ok {
			out[id] = status
		}
	}
	return out, nil
}

func (f *fakeSurveyRepo) UpsertByVenue(_ context.Context, survey *domain.Survey) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	survey.ID = "survey-" + survey.VenueID
	f.upserted = append(f.upserted, survey)
	if f.statuses == nil {
		f.statuses = make(map[string]domain.SurveyStatus)
	}
	f.statuses[survey.VenueID] = survey.Status
	return nil
}

func bristolFixture() (*fakeVenueRepo, *fakeSurveyRepo) {
	venues := &fakeVenueRepo{venues: []domain.Venue{
		{ID: "v1", City: "Bristol", Zone: "Clifton", Postcode: "BS8 1", PriorityScore: 5},
		{ID: "v2", City: "Bristol", Zone: "Clifton", Postcode: "BS8 2", PriorityScore: 9},
		{ID: "v3", City: "Bristol", Zone: "Harbourside", Postcode: "BS1 5", PriorityScore: 2},
		{ID: "v4", City: "London", Zone: "Soho", Postcode: "W1D 3", PriorityScore: 1},
	}}
	surveys := &fakeSurveyRepo{statuses: map[string]domain.SurveyStatus{
		"v1": domain.StatusCompleted,
		"v3": domain.StatusInProgress,
	}}
	return venues, surveys
}

func TestListCities(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewCoverageService(venues, surveys)

	cities, err := svc.ListCities(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, domain.CityCount{City: "Bristol", Total: 3}, cities[0])
	assert.Equal(t, domain.CityCount{City: "London", Total: 1}, cities[1])
}

func TestListZonesFiltersByCity(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewCoverageService(venues, surveys)

	zones, err := svc.ListZones(context.Background(), "Bristol")
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, "Clifton", zones[0].Zone)
	assert.Equal(t, 2, zones[0].Total)
	assert.Equal(t, 1, zones[0].Surveyed)

	assert.Equal(t, "Harbourside", zones[1].Zone)
	assert.Equal(t, 1, zones[1].Total)
	assert.Equal(t, 0, zones[1].Surveyed, "in_progress does not count as surveyed")

	total := 0
	for _, zone := range zones {
		total += zone.Total
	}
	assert.Equal(t, 3, total, "zone totals must sum to the city total")
}

func TestListPostcodes(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewCoverageService(venues, surveys)

	postcodes, err := svc.ListPostcodes(context.Background(), "Bristol", "Clifton")
	require.NoError(t, err)
	require.Len(t, postcodes, 2)
	assert.Equal(t, "BS8 1", postcodes[0].Postcode)
	assert.Equal(t, 1, postcodes[0].Surveyed)
	assert.Equal(t, "BS8 2", postcodes[1].Postcode)
	assert.Equal(t, 0, postcodes[1].Surveyed)
}

func TestListVenuesOrdersByPriority(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewCoverageService(venues, surveys)

	summaries, err := svc.ListVenues(context.Background(), "Bristol", "Clifton", "BS8 1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "v1", summaries[0].ID)
	assert.Equal(t, domain.StatusCompleted, summaries[0].Status)
}

func TestSummaryBristol(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewCoverageService(venues, surveys)

	rollup, err := svc.Summary(context.Background(), "Bristol")
	require.NoError(t, err)
	assert.Equal(t, 3, rollup.Total)
	assert.Equal(t, 1, rollup.Surveyed)
	assert.InDelta(t, 33.333, rollup.Coverage, 0.001)
}

func TestSummaryAllCities(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewCoverageService(venues, surveys)

	rollup, err := svc.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, rollup.Total)
	assert.Equal(t, 1, rollup.Surveyed)
}

func TestSummaryEmptyStore(t *testing.T) {
	svc := NewCoverageService(&fakeVenueRepo{}, &fakeSurveyRepo{})

	rollup, err := svc.Summary(context.Background(), "Bristol")
	require.NoError(t, err)
	assert.Equal(t, domain.Rollup{Total: 0, Surveyed: 0, Coverage: 0.0}, rollup)
}

func TestDashboardConsistentWithSummary(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewCoverageService(venues, surveys)

	dashboard, err := svc.Dashboard(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, dashboard.Cities, 2)

	summary, err := svc.Summary(context.Background(), "")
	require.NoError(t, err)

	total, surveyed := 0, 0
	for _, city := range dashboard.Cities {
		total += city.Total
		surveyed += city.Surveyed
	}
	assert.Equal(t, summary.Total, total)
	assert.Equal(t, summary.Surveyed, surveyed)
}

func TestListZonesUnknownBucketFilter(t *testing.T) {
	venues := &fakeVenueRepo{venues: []domain.Venue{
		{ID: "v1", City: "Bristol", Zone: "", Postcode: "BS1 1"},
	}}
	svc := NewCoverageService(venues, &fakeSurveyRepo{})

	postcodes, err := svc.ListPostcodes(context.Background(), "Bristol", domain.UnknownBucket)
	require.NoError(t, err)
	require.Len(t, postcodes, 1)
	assert.Equal(t, "BS1 1", postcodes[0].Postcode)
}

func TestSnapshotErrorsPropagate(t *testing.T) {
	storeErr := errors.New("mongo down")
	svc := NewCoverageService(&fakeVenueRepo{snapshotErr: storeErr}, &fakeSurveyRepo{})

	_, err := svc.Summary(context.Background(), "Bristol")
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.ListCities(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestStatusJoinErrorsPropagate(t *testing.T) {
	joinErr := errors.New("join failed")
	venues, _ := bristolFixture()
	svc := NewCoverageService(venues, &fakeSurveyRepo{statusErr: joinErr})

	_, err := svc.ListZones(context.Background(), "Bristol")
	assert.ErrorIs(t, err, joinErr)
}
