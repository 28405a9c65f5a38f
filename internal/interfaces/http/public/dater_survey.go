package public

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/twotable/twotable-services/api/internal/interfaces/http/common"
	intakeapp "github.com/twotable/twotable-services/api/internal/intake/application"
)

func (h *Handler) daterSurveySubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req daterSurveySubmitRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		response, err := h.daterSurveys.Submit(ctx, intakeapp.SubmitDaterSurveyCommand{
			Email:   req.Email,
			Answers: req.Answers,
		})
		if err != nil {
			if isValidationError(err) {
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Printf("dater survey submit failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to submit survey")
			return
		}

		h.logger.Printf("dater survey received from: %s", response.Email)
		common.WriteJSON(h.logger, w, http.StatusCreated, okResponse{
			OK:      true,
			ID:      response.ID,
			Message: "Survey submitted successfully",
		})
	}
}
