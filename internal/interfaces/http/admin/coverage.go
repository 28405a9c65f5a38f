package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/twotable/twotable-services/api/internal/interfaces/http/common"
)

const coverageQueryTimeout = 10 * time.Second

func (h *Handler) citiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), coverageQueryTimeout)
		defer cancel()

		cities, err := h.coverage.ListCities(ctx)
		if err != nil {
			h.logger.Printf("city list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to list cities")
			return
		}

		entries := make([]cityEntry, 0, len(cities))
		for _, city := range cities {
			entries = append(entries, cityEntry{City: city.City, RestaurantCount: city.Total})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"cities": entries})
	}
}

func (h *Handler) zonesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := strings.TrimSpace(r.URL.Query().Get("city"))
		if city == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "city is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), coverageQueryTimeout)
		defer cancel()

		zones, err := h.coverage.ListZones(ctx, city)
		if err != nil {
			h.logger.Printf("zone list failed city=%q err=%v", city, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to list zones")
			return
		}

		entries := make([]zoneEntry, 0, len(zones))
		for _, zone := range zones {
			entries = append(entries, zoneEntry{
				Zone:            zone.Zone,
				RestaurantCount: zone.Total,
				SurveyedCount:   zone.Surveyed,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"zones": entries})
	}
}

func (h *Handler) postcodesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		city := strings.TrimSpace(query.Get("city"))
		zone := strings.TrimSpace(query.Get("zone"))
		if city == "" || zone == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "city and zone are required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), coverageQueryTimeout)
		defer cancel()

		postcodes, err := h.coverage.ListPostcodes(ctx, city, zone)
		if err != nil {
			h.logger.Printf("postcode list failed city=%q zone=%q err=%v", city, zone, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to list postcodes")
			return
		}

		entries := make([]postcodeEntry, 0, len(postcodes))
		for _, postcode := range postcodes {
			entries = append(entries, postcodeEntry{
				Postcode:        postcode.Postcode,
				RestaurantCount: postcode.Total,
				SurveyedCount:   postcode.Surveyed,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"postcodes": entries})
	}
}

func (h *Handler) venuesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		city := strings.TrimSpace(query.Get("city"))
		zone := strings.TrimSpace(query.Get("zone"))
		postcode := strings.TrimSpace(query.Get("postcode"))
		if city == "" || zone == "" || postcode == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "city, zone and postcode are required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), coverageQueryTimeout)
		defer cancel()

		venues, err := h.coverage.ListVenues(ctx, city, zone, postcode)
		if err != nil {
			h.logger.Printf("venue list failed city=%q zone=%q postcode=%q err=%v", city, zone, postcode, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to list venues")
			return
		}

		entries := make([]venueEntry, 0, len(venues))
		for _, venue := range venues {
			entries = append(entries, buildVenueEntry(venue))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"venues": entries})
	}
}

func (h *Handler) summaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := strings.TrimSpace(r.URL.Query().Get("city"))

		ctx, cancel := context.WithTimeout(r.Context(), coverageQueryTimeout)
		defer cancel()

		rollup, err := h.coverage.Summary(ctx, city)
		if err != nil {
			h.logger.Printf("summary failed city=%q err=%v", city, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to compute summary")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, summaryResponse{
			Total:    rollup.Total,
			Surveyed: rollup.Surveyed,
			Coverage: rollup.Coverage,
		})
	}
}

func (h *Handler) dashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := strings.TrimSpace(r.URL.Query().Get("city"))

		ctx, cancel := context.WithTimeout(r.Context(), coverageQueryTimeout)
		defer cancel()

		dashboard, err := h.coverage.Dashboard(ctx, city)
		if err != nil {
			h.logger.Printf("dashboard failed city=%q err=%v", city, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to build dashboard")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildDashboardResponse(dashboard))
	}
}
