// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Toast API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

Every /api route is wrapped in middleware.WithLogging and
middleware.WithCaller, so handlers always find a caller on the context.
The public /api/share routes use middleware.WithOptionalCaller, which
treats an unverifiable token as a guest instead of answering 401.

# Endpoints

Health:

	GET /health
	GET /

Events (host, bearer token):

	POST /api/events                  - Create event
	GET  /api/events                  - List my events
	GET  /api/events/{id}             - Full event with responses
	PUT  /api/events/{id}             - Replace editable fields
	PUT  /api/events/{id}/media-link  - Set shared media link
	GET  /api/events/{id}/results     - Dietary and music tallies
	GET  /api/events/{id}/attendees   - RSVP list

Responses (anyone):

	POST /api/events/{id}/rsvp        - RSVP, optionally with poll choices
	POST /api/events/{id}/poll        - Poll choices only
	GET  /api/share/{id}              - Public event view
	GET  /api/share/{id}/calendar.ics - Public event as iCalendar
*/
package router
