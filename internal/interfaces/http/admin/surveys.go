package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	coverageapp "github.com/twotable/twotable-services/api/internal/coverage/application"
	"github.com/twotable/twotable-services/api/internal/interfaces/http/common"
)

func (h *Handler) surveySubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req surveySubmitRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		survey, err := h.surveys.Submit(ctx, coverageapp.SubmitSurveyCommand{
			VenueID:  req.VenueID,
			Surveyor: req.Surveyor,
			Status:   req.Status,
			Answers:  req.Answers,
		})
		if err != nil {
			switch {
			case errors.Is(err, coverageapp.ErrVenueNotFound):
				common.WriteError(h.logger, w, http.StatusNotFound, "venue not found")
			case errors.Is(err, coverageapp.ErrInvalidVenueID):
				common.WriteError(h.logger, w, http.StatusBadRequest, "invalid venue id")
			case errors.Is(err, coverageapp.ErrInvalidStatus):
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			default:
				h.logger.Printf("survey submit failed venueId=%q err=%v", req.VenueID, err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to submit survey")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, map[string]any{
			"ok": true,
			"id": survey.ID,
		})
	}
}
