// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package aggregate implements the event aggregate: merging participant
responses, projecting statistics and managing the event lifecycle.

# Service

All operations hang off a Service built over a store.Store:

	svc := aggregate.NewService(st, logger, cfg.BaseURL)

Every operation takes the resolved auth.Caller and returns either a value
or an *Error whose Kind the transport maps to a status code:

	not_found, invalid_input, unauthorized, forbidden, conflict, store_unavailable

# Responses

Submit upserts one participant's RSVP and/or poll entry:

	counters, err := svc.Submit(ctx, eventID, caller, aggregate.Submission{
		RSVP: &aggregate.RSVPInput{Status: "going"},
		Poll: &aggregate.PollInput{DietaryChoice: "Vegan"},
	})

Entries are keyed by participant: user:<id> for authenticated callers,
email:<address> when an email is supplied, otherwise guest:<token>. A
resubmission under the same key replaces the earlier entry.

The attendee count is always the number of RSVP entries with status
"going". It is computed by the store in the same transaction as the
write and is never accepted from clients.

Write conflicts reported by the store (store.ErrConflict) are retried up
to three times before surfacing as store_unavailable. Other store errors
are not retried.

# Projections

PollResults tallies dietary and music choices, skipping "Not specified".
ShareView is the public subset shown on the RSVP page; it never includes
the response maps or the host identity.
*/
package aggregate
