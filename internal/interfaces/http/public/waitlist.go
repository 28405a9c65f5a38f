package public

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/twotable/twotable-services/api/internal/interfaces/http/common"
	intakeapp "github.com/twotable/twotable-services/api/internal/intake/application"
)

const intakeTimeout = 5 * time.Second

func (h *Handler) waitlistJoinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req waitlistJoinRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		result, err := h.waitlist.Join(ctx, req.Email)
		if err != nil {
			if isValidationError(err) {
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Printf("waitlist join failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to add to waitlist")
			return
		}

		if result.Already {
			common.WriteJSON(h.logger, w, http.StatusOK, okResponse{
				OK:      true,
				ID:      result.Entry.ID,
				Message: "Already on waitlist",
			})
			return
		}

		h.logger.Printf("added to waitlist: %s", result.Entry.Email)
		common.WriteJSON(h.logger, w, http.StatusCreated, okResponse{
			OK:      true,
			ID:      result.Entry.ID,
			Message: "Added to waitlist",
		})
	}
}

func (h *Handler) waitlistCountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		count, err := h.waitlist.Count(ctx)
		if err != nil {
			h.logger.Printf("waitlist count failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to get count")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]int64{"count": count})
	}
}

func (h *Handler) waitlistListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		skip, limit := common.ParseListWindow(query.Get("skip"), query.Get("limit"))

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		entries, total, err := h.waitlist.List(ctx, intakeapp.Paging{Skip: skip, Limit: limit})
		if err != nil {
			h.logger.Printf("waitlist list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to retrieve waitlist")
			return
		}

		items := make([]waitlistEntryResponse, 0, len(entries))
		for _, entry := range entries {
			items = append(items, buildWaitlistEntryResponse(entry))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"entries":  items,
			"total":    total,
			"skip":     skip,
			"limit":    limit,
			"returned": len(items),
		})
	}
}
