package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/twotable/twotable-services/api/internal/interfaces/http/common"
	intakeapp "github.com/twotable/twotable-services/api/internal/intake/application"
)

func (h *Handler) contactSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactSubmitRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}
		if utf8.RuneCountInString(req.Message) > common.MaxMessageRunes {
			common.WriteError(h.logger, w, http.StatusBadRequest, "message is too long")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		submission, err := h.contact.Submit(ctx, intakeapp.SubmitContactCommand{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if err != nil {
			if isValidationError(err) {
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Printf("contact submit failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to submit message")
			return
		}

		h.logger.Printf("contact submission from: %s", submission.Email)
		common.WriteJSON(h.logger, w, http.StatusCreated, okResponse{
			OK:      true,
			ID:      submission.ID,
			Message: "Message submitted successfully",
		})
	}
}

func (h *Handler) contactDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		submission, err := h.contact.Detail(ctx, idParam)
		if err != nil {
			switch {
			case errors.Is(err, intakeapp.ErrInvalidID):
				common.WriteError(h.logger, w, http.StatusBadRequest, "invalid contact id format")
			case errors.Is(err, intakeapp.ErrNotFound):
				common.WriteError(h.logger, w, http.StatusNotFound, "contact not found")
			default:
				h.logger.Printf("contact detail fetch failed id=%q err=%v", idParam, err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to retrieve contact")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildContactResponse(*submission))
	}
}

func (h *Handler) contactListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		skip, limit := common.ParseListWindow(query.Get("skip"), query.Get("limit"))

		ctx, cancel := context.WithTimeout(r.Context(), intakeTimeout)
		defer cancel()

		submissions, total, err := h.contact.List(ctx, intakeapp.Paging{Skip: skip, Limit: limit})
		if err != nil {
			h.logger.Printf("contact list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to retrieve contacts")
			return
		}

		items := make([]contactResponse, 0, len(submissions))
		for _, submission := range submissions {
			items = append(items, buildContactResponse(submission))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"submissions": items,
			"total":       total,
			"skip":        skip,
			"limit":       limit,
			"returned":    len(items),
		})
	}
}
