package admin

import (
	"time"

	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

type cityEntry struct {
	City            string `json:"city"`
	RestaurantCount int    `json:"restaurant_count"`
}

type zoneEntry struct {
	Zone            string `json:"zone"`
	RestaurantCount int    `json:"restaurant_count"`
	SurveyedCount   int    `json:"surveyed_count"`
}

type postcodeEntry struct {
	Postcode        string `json:"postcode"`
	RestaurantCount int    `json:"restaurant_count"`
	SurveyedCount   int    `json:"surveyed_count"`
}

type venueEntry struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Rating           *float64   `json:"rating"`
	UserRatingsTotal *int       `json:"user_ratings_total"`
	PriceLevel       *int       `json:"price_level"`
	GoogleMapsURI    string     `json:"google_maps_uri"`
	WebsiteURI       string     `json:"website_uri"`
	LastSurveyedAt   *time.Time `json:"last_surveyed_at"`
	Priority         float64    `json:"priority"`
	Status           string     `json:"status"`
}

type summaryResponse struct {
	Total    int     `json:"total"`
	Surveyed int     `json:"surveyed"`
	Coverage float64 `json:"coverage"`
}

type dashboardCityEntry struct {
	City     string  `json:"city"`
	Total    int     `json:"total"`
	Surveyed int     `json:"surveyed"`
	Coverage float64 `json:"coverage"`
}

type dashboardPostcodeEntry struct {
	Postcode string  `json:"postcode"`
	Total    int     `json:"total"`
	Surveyed int     `json:"surveyed"`
	Coverage float64 `json:"coverage"`
}

type dashboardZoneEntry struct {
	Zone          string                   `json:"zone"`
	Total         int                      `json:"total"`
	Surveyed      int                      `json:"surveyed"`
	Coverage      float64                  `json:"coverage"`
	PostcodeCount int                      `json:"postcode_count"`
	Postcodes     []dashboardPostcodeEntry `json:"postcodes"`
}

type dashboardResponse struct {
	Cities      []dashboardCityEntry            `json:"cities"`
	ZonesByCity map[string][]dashboardZoneEntry `json:"zones_by_city"`
}

type surveySubmitRequest struct {
	VenueID  string         `json:"venue_id"`
	Surveyor string         `json:"surveyor"`
	Status   string         `json:"status"`
	Answers  map[string]any `json:"answers"`
}

func buildVenueEntry(summary domain.VenueSummary) venueEntry {
	return venueEntry{
		ID:               summary.ID,
		Name:             summary.Name,
		Rating:           summary.Rating,
		UserRatingsTotal: summary.UserRatingsTotal,
		PriceLevel:       summary.PriceLevel,
		GoogleMapsURI:    summary.GoogleMapsURI,
		WebsiteURI:       summary.WebsiteURI,
		LastSurveyedAt:   summary.LastSurveyedAt,
		Priority:         summary.Priority,
		Status:           string(summary.Status),
	}
}

func buildDashboardResponse(dashboard domain.Dashboard) dashboardResponse {
	cities := make([]dashboardCityEntry, 0, len(dashboard.Cities))
	for _, city := range dashboard.Cities {
		cities = append(cities, dashboardCityEntry{
			City:     city.City,
			Total:    city.Total,
			Surveyed: city.Surveyed,
			Coverage: city.Coverage,
		})
	}

	zonesByCity := make(map[string][]dashboardZoneEntry, len(dashboard.ZonesByCity))
	for city, zones := range dashboard.ZonesByCity {
		entries := make([]dashboardZoneEntry, 0, len(zones))
		for _, zone := range zones {
			postcodes := make([]dashboardPostcodeEntry, 0, len(zone.Postcodes))
			for _, postcode := range zone.Postcodes {
				postcodes = append(postcodes, dashboardPostcodeEntry{
					Postcode: postcode.Postcode,
					Total:    postcode.Total,
					Surveyed: postcode.Surveyed,
					Coverage: postcode.Coverage,
				})
			}
			entries = append(entries, dashboardZoneEntry{
				Zone:          zone.Zone,
				Total:         zone.Total,
				Surveyed:      zone.Surveyed,
				Coverage:      zone.Coverage,
				PostcodeCount: len(postcodes),
				Postcodes:     postcodes,
			})
		}
		zonesByCity[city] = entries
	}

	return dashboardResponse{Cities: cities, ZonesByCity: zonesByCity}
}
