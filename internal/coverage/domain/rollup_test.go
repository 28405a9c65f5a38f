package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venue(id, city, zone, postcode string) Venue {
	return Venue{ID: id, City: city, Zone: zone, Postcode: postcode}
}

func completed(ids ...string) map[string]SurveyStatus {
	statuses := make(map[string]SurveyStatus, len(ids))
	for _, id := range ids {
		statuses[id] = StatusCompleted
	}
	return statuses
}

func TestBucketLabel(t *testing.T) {
	assert.Equal(t, "Clifton", BucketLabel("Clifton"))
	assert.Equal(t, "Clifton", BucketLabel("  Clifton  "))
	assert.Equal(t, UnknownBucket, BucketLabel(""))
	assert.Equal(t, UnknownBucket, BucketLabel("   "))
}

func TestCoveragePercent(t *testing.T) {
	assert.Equal(t, 0.0, CoveragePercent(0, 0))
	assert.Equal(t, 0.0, CoveragePercent(10, 0))
	assert.Equal(t, 100.0, CoveragePercent(10, 10))
	assert.InDelta(t, 33.333, CoveragePercent(3, 1), 0.001)
}

func TestNewSurveyStatus(t *testing.T) {
	status, err := NewSurveyStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)

	status, err = NewSurveyStatus(" in_progress ")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = NewSurveyStatus("not_started")
	assert.Error(t, err, "not_started is derived, never submitted")

	_, err = NewSurveyStatus("done")
	assert.Error(t, err)
}

func TestStatusForDefaultsToNotStarted(t *testing.T) {
	statuses := map[string]SurveyStatus{"a": StatusInProgress}
	assert.Equal(t, StatusInProgress, StatusFor(statuses, "a"))
	assert.Equal(t, StatusNotStarted, StatusFor(statuses, "missing"))
	assert.Equal(t, StatusNotStarted, StatusFor(nil, "a"))
}

func TestCountCities(t *testing.T) {
	venues := []Venue{
		venue("1", "London", "", ""),
		venue("2", "Bristol", "", ""),
		venue("3", "Bristol", "", ""),
		venue("4", "", "", ""),
	}

	cities := CountCities(venues)
	require.Len(t, cities, 3)
	assert.Equal(t, CityCount{City: "Bristol", Total: 2}, cities[0])
	assert.Equal(t, CityCount{City: "London", Total: 1}, cities[1])
	assert.Equal(t, CityCount{City: UnknownBucket, Total: 1}, cities[2])
}

func TestCountCitiesEmpty(t *testing.T) {
	assert.Empty(t, CountCities(nil))
}

func TestRollupZones(t *testing.T) {
	venues := []Venue{
		venue("1", "Bristol", "Clifton", "BS8 1"),
		venue("2", "Bristol", "Clifton", "BS8 2"),
		venue("3", "Bristol", "Harbourside", "BS1 5"),
		venue("4", "Bristol", "", "BS1 5"),
	}

	zones := RollupZones(venues, completed("1", "3"))
	require.Len(t, zones, 3)

	assert.Equal(t, "Clifton", zones[0].Zone)
	assert.Equal(t, 2, zones[0].Total)
	assert.Equal(t, 1, zones[0].Surveyed)
	assert.InDelta(t, 50.0, zones[0].Coverage, 0.0001)

	assert.Equal(t, "Harbourside", zones[1].Zone)
	assert.Equal(t, 1, zones[1].Total)
	assert.Equal(t, 1, zones[1].Surveyed)

	assert.Equal(t, UnknownBucket, zones[2].Zone)
	assert.Equal(t, 0, zones[2].Surveyed)

	totalAcrossZones := 0
	for _, zone := range zones {
		totalAcrossZones += zone.Total
	}
	assert.Equal(t, len(venues), totalAcrossZones)
}

func TestRollupZonesOnlyCompletedCounts(t *testing.T) {
	venues := []Venue{
		venue("1", "Bristol", "Clifton", ""),
		venue("2", "Bristol", "Clifton", ""),
	}
	statuses := map[string]SurveyStatus{
		"1": StatusInProgress,
		"2": StatusCompleted,
	}

	zones := RollupZones(venues, statuses)
	require.Len(t, zones, 1)
	assert.Equal(t, 2, zones[0].Total)
	assert.Equal(t, 1, zones[0].Surveyed)
}

func TestRollupPostcodes(t *testing.T) {
	venues := []Venue{
		venue("1", "Bristol", "Clifton", "BS8 1"),
		venue("2", "Bristol", "Clifton", "BS8 1"),
		venue("3", "Bristol", "Clifton", ""),
	}

	postcodes := RollupPostcodes(venues, completed("2"))
	require.Len(t, postcodes, 2)
	assert.Equal(t, "BS8 1", postcodes[0].Postcode)
	assert.Equal(t, 2, postcodes[0].Total)
	assert.Equal(t, 1, postcodes[0].Surveyed)
	assert.Equal(t, UnknownBucket, postcodes[1].Postcode)
	assert.Equal(t, 1, postcodes[1].Total)
}

func TestSummarize(t *testing.T) {
	venues := []Venue{
		venue("1", "Bristol", "Clifton", "BS8 1"),
		venue("2", "Bristol", "Clifton", "BS8 2"),
		venue("3", "Bristol", "Harbourside", "BS1 5"),
	}

	rollup := Summarize(venues, completed("1"))
	assert.Equal(t, 3, rollup.Total)
	assert.Equal(t, 1, rollup.Surveyed)
	assert.InDelta(t, 33.333, rollup.Coverage, 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	rollup := Summarize(nil, nil)
	assert.Equal(t, Rollup{Total: 0, Surveyed: 0, Coverage: 0.0}, rollup)
}

func TestBuildDashboardLevelsAgree(t *testing.T) {
	venues := []Venue{
		venue("1", "Bristol", "Clifton", "BS8 1"),
		venue("2", "Bristol", "Clifton", "BS8 2"),
		venue("3", "Bristol", "Harbourside", "BS1 5"),
		venue("4", "Bristol", "", ""),
		venue("5", "London", "Soho", "W1D 3"),
	}

	dashboard := BuildDashboard(venues, completed("1", "5"))

	require.Len(t, dashboard.Cities, 2)
	assert.Equal(t, "Bristol", dashboard.Cities[0].City)
	assert.Equal(t, 4, dashboard.Cities[0].Total)
	assert.Equal(t, 1, dashboard.Cities[0].Surveyed)
	assert.Equal(t, "London", dashboard.Cities[1].City)
	assert.Equal(t, 1, dashboard.Cities[1].Total)

	for _, city := range dashboard.Cities {
		zones := dashboard.ZonesByCity[city.City]
		zoneTotal, zoneSurveyed := 0, 0
		for _, zone := range zones {
			zoneTotal += zone.Total
			zoneSurveyed += zone.Surveyed

			postcodeTotal, postcodeSurveyed := 0, 0
			for _, postcode := range zone.Postcodes {
				postcodeTotal += postcode.Total
				postcodeSurveyed += postcode.Surveyed
			}
			assert.Equal(t, zone.Total, postcodeTotal, "postcode totals must sum to zone total")
			assert.Equal(t, zone.Surveyed, postcodeSurveyed, "postcode surveyed must sum to zone surveyed")
		}
		assert.Equal(t, city.Total, zoneTotal, "zone totals must sum to city total")
		assert.Equal(t, city.Surveyed, zoneSurveyed, "zone surveyed must sum to city surveyed")
	}

	bristolZones := dashboard.ZonesByCity["Bristol"]
	require.Len(t, bristolZones, 3)
	assert.Equal(t, UnknownBucket, bristolZones[2].Zone)
	require.Len(t, bristolZones[2].Postcodes, 1)
	assert.Equal(t, UnknownBucket, bristolZones[2].Postcodes[0].Postcode)
}

func TestBuildDashboardEmpty(t *testing.T) {
	dashboard := BuildDashboard(nil, nil)
	assert.Empty(t, dashboard.Cities)
	assert.Empty(t, dashboard.ZonesByCity)
}

func TestSummarizeVenuesOrdersByPriority(t *testing.T) {
	venues := []Venue{
		{ID: "a", Name: "A", PriorityScore: 5},
		{ID: "b", Name: "B", PriorityScore: 9},
		{ID: "c", Name: "C", PriorityScore: 2},
	}

	summaries := SummarizeVenues(venues, map[string]SurveyStatus{"b": StatusInProgress})
	require.Len(t, summaries, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{summaries[0].ID, summaries[1].ID, summaries[2].ID})
	assert.Equal(t, StatusInProgress, summaries[0].Status)
	assert.Equal(t, StatusNotStarted, summaries[1].Status)
}

func TestSummarizeVenuesStableOnTies(t *testing.T) {
	venues := []Venue{
		{ID: "first", PriorityScore: 3},
		{ID: "second", PriorityScore: 3},
		{ID: "third", PriorityScore: 3},
	}

	summaries := SummarizeVenues(venues, nil)
	require.Len(t, summaries, 3)
	assert.Equal(t, "first", summaries[0].ID)
	assert.Equal(t, "second", summaries[1].ID)
	assert.Equal(t, "third", summaries[2].ID)
}
