package domain

import (
	"sort"
	"strings"
	"time"
)

// UnknownBucket labels venues whose city, zone or postcode is absent. Such
// venues are bucketed rather than dropped so every roll-up level counts the
// same set of venues.
const UnknownBucket = "Unknown"

// BucketLabel normalizes a hierarchy value to its roll-up bucket.
func BucketLabel(value string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return UnknownBucket
}

// CoveragePercent returns surveyed/total as a percentage in [0, 100],
// defined as 0.0 when total is 0.
func CoveragePercent(total, surveyed int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(surveyed) / float64(total) * 100
}

// Rollup is the derived total/surveyed/coverage triple for one hierarchy node.
type Rollup struct {
	Total    int
	Surveyed int
	Coverage float64
}

// NewRollup derives the coverage percentage from the two counts.
func NewRollup(total, surveyed int) Rollup {
	return Rollup{Total: total, Surveyed: surveyed, Coverage: CoveragePercent(total, surveyed)}
}

// CityCount is the venue count for a single city.
type CityCount struct {
	City  string
	Total int
}

// CityRollup is the survey roll-up for a single city.
type CityRollup struct {
	City string
	Rollup
}

// ZoneRollup is the survey roll-up for a zone within a city.
type ZoneRollup struct {
	Zone string
	Rollup
}

// PostcodeRollup is the survey roll-up for a postcode within a zone.
type PostcodeRollup struct {
	Postcode string
	Rollup
}

// ZoneBreakdown is a zone roll-up carrying its per-postcode breakdown.
type ZoneBreakdown struct {
	Zone string
	Rollup
	Postcodes []PostcodeRollup
}

// Dashboard is the full three-level roll-up tree, computed from a single
// venue snapshot so the levels can never disagree.
type Dashboard struct {
	Cities      []CityRollup
	ZonesByCity map[string][]ZoneBreakdown
}

// StatusFor resolves a venue's survey status from the survey join, defaulting
// to not_started when no record exists.
func StatusFor(statuses map[string]SurveyStatus, venueID string) SurveyStatus {
	if status, ok := statuses[venueID]; ok {
		return status
	}
	return StatusNotStarted
}

func isSurveyed(statuses map[string]SurveyStatus, venueID string) bool {
	return StatusFor(statuses, venueID) == StatusCompleted
}

// CountCities groups venues by city and returns per-city totals sorted
// ascending by city name.
func CountCities(venues []Venue) []CityCount {
	totals := make(map[string]int)
	for _, venue := range venues {
		totals[BucketLabel(venue.City)]++
	}

	cities := make([]CityCount, 0, len(totals))
	for city, total := range totals {
		cities = append(cities, CityCount{City: city, Total: total})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].City < cities[j].City })
	return cities
}

type tally struct {
	total    int
	surveyed int
}

func (t *tally) add(surveyed bool) {
	t.total++
	if surveyed {
		t.surveyed++
	}
}

func sortedKeys(m map[string]*tally) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// RollupZones groups the given venues (already filtered to one city) by zone.
// Sorted ascending by zone name.
func RollupZones(venues []Venue, statuses map[string]SurveyStatus) []ZoneRollup {
	tallies := make(map[string]*tally)
	for _, venue := range venues {
		zone := BucketLabel(venue.Zone)
		if tallies[zone] == nil {
			tallies[zone] = &tally{}
		}
		tallies[zone].add(isSurveyed(statuses, venue.ID))
	}

	zones := make([]ZoneRollup, 0, len(tallies))
	for _, zone := range sortedKeys(tallies) {
		t := tallies[zone]
		zones = append(zones, ZoneRollup{Zone: zone, Rollup: NewRollup(t.total, t.surveyed)})
	}
	return zones
}

// RollupPostcodes groups the given venues (already filtered to one city and
// zone) by postcode. Sorted ascending by postcode.
func RollupPostcodes(venues []Venue, statuses map[string]SurveyStatus) []PostcodeRollup {
	tallies := make(map[string]*tally)
	for _, venue := range venues {
		postcode := BucketLabel(venue.Postcode)
		if tallies[postcode] == nil {
			tallies[postcode] = &tally{}
		}
		tallies[postcode].add(isSurveyed(statuses, venue.ID))
	}

	postcodes := make([]PostcodeRollup, 0, len(tallies))
	for _, postcode := range sortedKeys(tallies) {
		t := tallies[postcode]
		postcodes = append(postcodes, PostcodeRollup{Postcode: postcode, Rollup: NewRollup(t.total, t.surveyed)})
	}
	return postcodes
}

// Summarize computes the single-level aggregate over all given venues.
func Summarize(venues []Venue, statuses map[string]SurveyStatus) Rollup {
	surveyed := 0
	for _, venue := range venues {
		if isSurveyed(statuses, venue.ID) {
			surveyed++
		}
	}
	return NewRollup(len(venues), surveyed)
}

// BuildDashboard derives all three roll-up levels from one pass over the
// venue snapshot.
func BuildDashboard(venues []Venue, statuses map[string]SurveyStatus) Dashboard {
	type zoneNode struct {
		tally
		postcodes map[string]*tally
	}
	type cityNode struct {
		tally
		zones map[string]*zoneNode
	}

	tree := make(map[string]*cityNode)
	for _, venue := range venues {
		city := BucketLabel(venue.City)
		zone := BucketLabel(venue.Zone)
		postcode := BucketLabel(venue.Postcode)
		surveyed := isSurveyed(statuses, venue.ID)

		cn := tree[city]
		if cn == nil {
			cn = &cityNode{zones: make(map[string]*zoneNode)}
			tree[city] = cn
		}
		cn.add(surveyed)

		zn := cn.zones[zone]
		if zn == nil {
			zn = &zoneNode{postcodes: make(map[string]*tally)}
			cn.zones[zone] = zn
		}
		zn.add(surveyed)

		pt := zn.postcodes[postcode]
		if pt == nil {
			pt = &tally{}
			zn.postcodes[postcode] = pt
		}
		pt.add(surveyed)
	}

	cityNames := make([]string, 0, len(tree))
	for city := range tree {
		cityNames = append(cityNames, city)
	}
	sort.Strings(cityNames)

	dashboard := Dashboard{
		Cities:      make([]CityRollup, 0, len(cityNames)),
		ZonesByCity: make(map[string][]ZoneBreakdown, len(cityNames)),
	}
	for _, city := range cityNames {
		cn := tree[city]
		dashboard.Cities = append(dashboard.Cities, CityRollup{
			City:   city,
			Rollup: NewRollup(cn.total, cn.surveyed),
		})

		zoneNames := make([]string, 0, len(cn.zones))
		for zone := range cn.zones {
			zoneNames = append(zoneNames, zone)
		}
		sort.Strings(zoneNames)

		zones := make([]ZoneBreakdown, 0, len(zoneNames))
		for _, zone := range zoneNames {
			zn := cn.zones[zone]
			postcodes := make([]PostcodeRollup, 0, len(zn.postcodes))
			for _, postcode := range sortedKeys(zn.postcodes) {
				pt := zn.postcodes[postcode]
				postcodes = append(postcodes, PostcodeRollup{
					Postcode: postcode,
					Rollup:   NewRollup(pt.total, pt.surveyed),
				})
			}
			zones = append(zones, ZoneBreakdown{
				Zone:      zone,
				Rollup:    NewRollup(zn.total, zn.surveyed),
				Postcodes: postcodes,
			})
		}
		dashboard.ZonesByCity[city] = zones
	}
	return dashboard
}

// VenueSummary is the listing projection of a venue joined with its survey
// status.
type VenueSummary struct {
	ID               string
	Name             string
	Rating           *float64
	UserRatingsTotal *int
	PriceLevel       *int
	GoogleMapsURI    string
	WebsiteURI       string
	LastSurveyedAt   *time.Time
	Priority         float64
	Status           SurveyStatus
}

// SummarizeVenues projects venues into listing summaries ordered by survey
// priority score, highest first. The sort is stable so ties keep the store's
// natural order across repeated calls.
func SummarizeVenues(venues []Venue, statuses map[string]SurveyStatus) []VenueSummary {
	summaries := make([]VenueSummary, 0, len(venues))
	for _, venue := range venues {
		summaries = append(summaries, VenueSummary{
			ID:               venue.ID,
			Name:             venue.Name,
			Rating:           venue.Rating,
			UserRatingsTotal: venue.UserRatingsTotal,
			PriceLevel:       venue.PriceLevel,
			GoogleMapsURI:    venue.GoogleMapsURI,
			WebsiteURI:       venue.WebsiteURI,
			LastSurveyedAt:   venue.LastSurveyedAt,
			Priority:         venue.PriorityScore,
			Status:           StatusFor(statuses, venue.ID),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Priority > summaries[j].Priority
	})
	return summaries
}
