package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/twotable/twotable-services/api/internal/interfaces/http/common"
	intakeapp "github.com/twotable/twotable-services/api/internal/intake/application"
)

func (h *Handler) applicationSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applicationSubmitRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		app, err := h.applications.Submit(ctx, intakeapp.SubmitApplicationCommand{
			Venue:    req.Venue,
			City:     req.City,
			Type:     common.CanonicalVenueType(req.Type),
			Web:      req.Web,
			Contact:  req.Contact,
			Role:     req.Role,
			Email:    req.Email,
			Phone:    req.Phone,
			Nights:   req.Nights,
			Capacity: req.Capacity,
			Payout:   req.Payout,
			Notes:    req.Notes,
		})
		if err != nil {
			if isValidationError(err) {
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Printf("venue application submit failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to submit application")
			return
		}

		h.logger.Printf("venue application received: %s (%s)", app.Venue, app.City)
		go h.notifyApplicationReceived(context.WithoutCancel(ctx), *app)

		common.WriteJSON(h.logger, w, http.StatusCreated, okResponse{
			OK:      true,
			ID:      app.ID,
			Message: "Application submitted successfully",
		})
	}
}

func (h *Handler) applicationDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		app, err := h.applications.Detail(ctx, idParam)
		if err != nil {
			switch {
			case errors.Is(err, intakeapp.ErrInvalidID):
				common.WriteError(h.logger, w, http.StatusBadRequest, "invalid application id format")
			case errors.Is(err, intakeapp.ErrNotFound):
				common.WriteError(h.logger, w, http.StatusNotFound, "application not found")
			default:
				h.logger.Printf("application detail fetch failed id=%q err=%v", idParam, err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to retrieve application")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildApplicationResponse(*app))
	}
}

func (h *Handler) applicationListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		skip, limit := common.ParseListWindow(query.Get("skip"), query.Get("limit"))

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		apps, total, err := h.applications.List(ctx, intakeapp.Paging{Skip: skip, Limit: limit})
		if err != nil {
			h.logger.Printf("application list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to retrieve applications")
			return
		}

		items := make([]applicationResponse, 0, len(apps))
		for _, app := range apps {
			items = append(items, buildApplicationResponse(app))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"applications": items,
			"total":        total,
			"skip":         skip,
			"limit":        limit,
			"returned":     len(items),
		})
	}
}
