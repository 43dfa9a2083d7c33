// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/ST10291541/ToastAPI/aggregate"
	"github.com/ST10291541/ToastAPI/middleware"
	"github.com/ST10291541/ToastAPI/models"
)

type ResponseHandler struct {
	svc *aggregate.Service
}

func NewResponseHandler(svc *aggregate.Service) *ResponseHandler {
	return &ResponseHandler{svc: svc}
}

// SubmitRSVP handles POST /api/events/{id}/rsvp
// Poll choices sent with the RSVP are stored in the same write
func (h *ResponseHandler) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.SubmitRSVPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sub := aggregate.Submission{
		RSVP:        &aggregate.RSVPInput{Status: req.Status},
		DisplayName: req.UserName,
		Email:       req.UserEmail,
	}
	if strings.TrimSpace(req.DietaryChoice) != "" || strings.TrimSpace(req.MusicChoice) != "" {
		sub.Poll = &aggregate.PollInput{DietaryChoice: req.DietaryChoice, MusicChoice: req.MusicChoice}
	}

	counters, err := h.svc.Submit(r.Context(), eventID, middleware.CallerFrom(r.Context()), sub)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponse{
		Message:  "RSVP recorded",
		Counters: counters,
	})
}

// SubmitPoll handles POST /api/events/{id}/poll
func (h *ResponseHandler) SubmitPoll(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.SubmitPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	counters, err := h.svc.SubmitPoll(r.Context(), eventID, middleware.CallerFrom(r.Context()),
		req.DietaryChoice, req.MusicChoice, req.UserName, req.UserEmail)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponse{
		Message:  "Poll response recorded",
		Counters: counters,
	})
}
