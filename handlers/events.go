// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ST10291541/ToastAPI/aggregate"
	"github.com/ST10291541/ToastAPI/calendar"
	"github.com/ST10291541/ToastAPI/middleware"
	"github.com/ST10291541/ToastAPI/models"
)

type EventHandler struct {
	svc *aggregate.Service
}

func NewEventHandler(svc *aggregate.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ev, err := h.svc.Create(r.Context(), middleware.CallerFrom(r.Context()), req)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		EventID:         ev.ID,
		SharedMediaLink: ev.SharedMediaLink,
		ShareURL:        h.svc.ShareURL(ev.ID),
	})
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListHostEvents(r.Context(), middleware.CallerFrom(r.Context()))
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListEventsResponse{Events: events})
}

// GetEvent handles GET /api/events/{id}
// Returns the full aggregate, including both response maps, to the host only
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	ev, err := h.svc.Get(r.Context(), eventID, middleware.CallerFrom(r.Context()))
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ev)
}

// UpdateEvent handles PUT /api/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.UpdateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ev, err := h.svc.ReplaceFields(r.Context(), eventID, middleware.CallerFrom(r.Context()), req)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ev)
}

// SetMediaLink handles PUT /api/events/{id}/media-link
func (h *EventHandler) SetMediaLink(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.SetMediaLinkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	link, err := h.svc.SetMediaLink(r.Context(), eventID, middleware.CallerFrom(r.Context()), req.SharedMediaLink)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SetMediaLinkResponse{SharedMediaLink: link})
}

// ShareEvent handles GET /api/share/{id}
// Public: no response maps and no host identity
func (h *EventHandler) ShareEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	view, err := h.svc.ShareView(r.Context(), eventID)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// ShareCalendar handles GET /api/share/{id}/calendar.ics
func (h *EventHandler) ShareCalendar(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	view, err := h.svc.ShareView(r.Context(), eventID)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, view, time.Now()); err != nil {
		if errors.Is(err, calendar.ErrUnparsableDate) {
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "event date cannot be exported to a calendar")
			return
		}
		slog.Error("calendar export failed", "event_id", eventID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build calendar")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+eventID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
