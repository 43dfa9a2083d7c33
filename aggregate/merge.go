// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"context"
	"errors"
	"strings"

	"github.com/ST10291541/ToastAPI/auth"
	"github.com/ST10291541/ToastAPI/models"
	"github.com/ST10291541/ToastAPI/store"
)

// Submission is one participant's response. At least one of RSVP and
// Poll must be set; both are written together or not at all.
type Submission struct {
	RSVP        *RSVPInput
	Poll        *PollInput
	DisplayName string
	Email       string
}

type RSVPInput struct {
	Status string
}

// PollInput fields may be empty; empty choices are stored as "Not specified".
type PollInput struct {
	DietaryChoice string
	MusicChoice   string
}

// Submit upserts the caller's RSVP and/or poll entry for the event and
// returns the counters as of the write. A resubmission under the same
// participant key replaces the earlier entry entirely.
func (s *Service) Submit(ctx context.Context, eventID string, caller auth.Caller, sub Submission) (models.Counters, error) {
	if sub.RSVP == nil && sub.Poll == nil {
		return models.Counters{}, newError(KindInvalidInput, "nothing to submit")
	}

	var rsvp *models.RsvpEntry
	var poll *models.PollEntry
	now := s.now()
	name := DisplayName(caller, sub.DisplayName, sub.Email)

	if sub.RSVP != nil {
		status := normalizeStatus(sub.RSVP.Status)
		if status == "" {
			return models.Counters{}, newError(KindInvalidInput, "RSVP status is required")
		}
		if !models.ValidStatus(status) {
			return models.Counters{}, newError(KindInvalidInput, "status must be one of: going, maybe, not_going")
		}
		rsvp = &models.RsvpEntry{DisplayName: name, Status: status, RespondedAt: now}
	}

	if sub.Poll != nil {
		poll = &models.PollEntry{
			DietaryChoice: choiceOrDefault(sub.Poll.DietaryChoice),
			MusicChoice:   choiceOrDefault(sub.Poll.MusicChoice),
			DisplayName:   name,
			RespondedAt:   now,
		}
	}

	key := ParticipantKey(caller, sub.Email)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		counters, err := s.store.SaveResponse(ctx, eventID, key, rsvp, poll)
		if err == nil {
			s.logger.Info("response saved",
				"event_id", eventID,
				"rsvp", rsvp != nil,
				"poll", poll != nil,
				"attendee_count", counters.AttendeeCount,
			)
			return counters, nil
		}

		if errors.Is(err, store.ErrNotFound) {
			return models.Counters{}, newError(KindNotFound, "event not found")
		}
		if !errors.Is(err, store.ErrConflict) {
			s.logger.Error("failed to save response", "event_id", eventID, "error", err)
			return models.Counters{}, storeError(err)
		}

		lastErr = err
		s.logger.Warn("response write conflicted, retrying", "event_id", eventID, "attempt", attempt)
		if ctx.Err() != nil {
			break
		}
	}

	s.logger.Error("response write kept conflicting", "event_id", eventID, "error", lastErr)
	return models.Counters{}, storeError(lastErr)
}

// SubmitRSVP records an attendance status only.
func (s *Service) SubmitRSVP(ctx context.Context, eventID string, caller auth.Caller, status, displayName, email string) (models.Counters, error) {
	return s.Submit(ctx, eventID, caller, Submission{
		RSVP:        &RSVPInput{Status: status},
		DisplayName: displayName,
		Email:       email,
	})
}

// SubmitPoll records dietary and music choices only.
func (s *Service) SubmitPoll(ctx context.Context, eventID string, caller auth.Caller, dietary, music, displayName, email string) (models.Counters, error) {
	return s.Submit(ctx, eventID, caller, Submission{
		Poll:        &PollInput{DietaryChoice: dietary, MusicChoice: music},
		DisplayName: displayName,
		Email:       email,
	})
}

// normalizeStatus accepts "Not Going" and "not-going" as not_going.
func normalizeStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	status = strings.ReplaceAll(status, " ", "_")
	return strings.ReplaceAll(status, "-", "_")
}

func choiceOrDefault(choice string) string {
	if c := strings.TrimSpace(choice); c != "" {
		return c
	}
	return models.NotSpecified
}
