// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/ST10291541/ToastAPI/aggregate"
	"github.com/ST10291541/ToastAPI/middleware"
	"github.com/ST10291541/ToastAPI/models"
)

type ResultsHandler struct {
	svc *aggregate.Service
}

func NewResultsHandler(svc *aggregate.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetResults handles GET /api/events/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	results, err := h.svc.PollResults(r.Context(), eventID, middleware.CallerFrom(r.Context()))
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetAttendees handles GET /api/events/{id}/attendees
func (h *ResultsHandler) GetAttendees(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	attendees, err := h.svc.Attendees(r.Context(), eventID, middleware.CallerFrom(r.Context()))
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AttendeesResponse{Attendees: attendees})
}
