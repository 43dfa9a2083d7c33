// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Toast API.

# Handler Types

Each handler is a thin struct over the aggregate service:

  - EventHandler: create, list, read, edit, media link, share view and .ics export
  - ResponseHandler: RSVP and poll submission
  - ResultsHandler: poll results and attendee list

Handlers are created via constructor functions:

	eventHandler := handlers.NewEventHandler(svc)

Every handler expects to run behind middleware.WithCaller, which puts the
resolved caller on the request context.

# Host Operations

Require a bearer token for the event's host:

	POST /api/events                    → CreateEvent
	GET  /api/events                    → ListEvents
	GET  /api/events/{id}               → GetEvent
	PUT  /api/events/{id}               → UpdateEvent
	PUT  /api/events/{id}/media-link    → SetMediaLink
	GET  /api/events/{id}/results       → GetResults
	GET  /api/events/{id}/attendees     → GetAttendees

UpdateEvent only accepts the editable fields (title, date, time, location,
description, category, dietary_options, music_options). Anything else in
the body is ignored.

# Guest Operations

Open to anyone; a token is optional:

	GET  /api/share/{id}                → ShareEvent
	GET  /api/share/{id}/calendar.ics   → ShareCalendar
	POST /api/events/{id}/rsvp          → SubmitRSVP
	POST /api/events/{id}/poll          → SubmitPoll

An RSVP may carry dietary_choice and music_choice; when either is set the
poll response is written in the same transaction as the RSVP.

# Errors

Service errors are written with middleware.ServiceError, which maps the
error kind to the status code and never exposes store details.
*/
package handlers
