// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/ST10291541/ToastAPI/aggregate"
	"github.com/ST10291541/ToastAPI/cliparse"
	"github.com/ST10291541/ToastAPI/handlers"
	"github.com/ST10291541/ToastAPI/middleware"
)

func NewRouter(svc *aggregate.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(svc)
	responseHandler := handlers.NewResponseHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)

	// Every API route logs and resolves the caller first
	api := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithCaller(cfg.AuthSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Event management (host)
	mux.HandleFunc("POST /api/events", api(eventHandler.CreateEvent))
	mux.HandleFunc("GET /api/events", api(eventHandler.ListEvents))
	mux.HandleFunc("GET /api/events/{id}", api(eventHandler.GetEvent))
	mux.HandleFunc("PUT /api/events/{id}", api(eventHandler.UpdateEvent))
	mux.HandleFunc("PUT /api/events/{id}/media-link", api(eventHandler.SetMediaLink))

	// Analytics (host)
	mux.HandleFunc("GET /api/events/{id}/results", api(resultsHandler.GetResults))
	mux.HandleFunc("GET /api/events/{id}/attendees", api(resultsHandler.GetAttendees))

	// Responses (anyone with the link)
	mux.HandleFunc("POST /api/events/{id}/rsvp", api(responseHandler.SubmitRSVP))
	mux.HandleFunc("POST /api/events/{id}/poll", api(responseHandler.SubmitPoll))

	// Public share page data; a stale token falls back to guest
	public := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithOptionalCaller(cfg.AuthSecret, h))
	}
	mux.HandleFunc("GET /api/share/{id}", public(eventHandler.ShareEvent))
	mux.HandleFunc("GET /api/share/{id}/calendar.ics", public(eventHandler.ShareCalendar))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("toast API v1"))
	})

	return mux
}
