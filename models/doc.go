// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Event: the aggregate, with both response maps keyed by participant
  - RsvpEntry: display name, status, responded_at
  - PollEntry: dietary and music choice, display name, responded_at
  - EventFields: the host-editable fields, nothing else
  - Counters: attendee, RSVP and poll totals after a write
  - EventSummary: one row of a host's event list

AttendeeCount is always derived from the RSVP entries with status "going".

# Request Types

  - CreateEventRequest
  - UpdateEventRequest (alias of EventFields)
  - SetMediaLinkRequest: shared_media_link
  - SubmitRSVPRequest: status, optional dietary_choice and music_choice
  - SubmitPollRequest: dietary_choice, music_choice

Both submit requests accept user_name and user_email for guests.

# Response Types

  - CreateEventResponse: event_id, shared_media_link, share_url
  - SubmitResponse: message plus counters
  - PollResults: tallies, raw responses, options, media link
  - ShareView: the public subset, no response maps or host identity
  - AttendeesResponse, ListEventsResponse, SetMediaLinkResponse
  - ErrorResponse: error, kind, message

# Constants

RSVP status values:

	StatusGoing    = "going"
	StatusMaybe    = "maybe"
	StatusNotGoing = "not_going"

Defaults:

	NotSpecified    = "Not specified"
	DefaultCategory = "General"
	AnonymousName   = "Anonymous"
*/
package models
