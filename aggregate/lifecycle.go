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

// Create publishes a new event hosted by the caller. The event starts
// with no responses and an attendee count of zero.
func (s *Service) Create(ctx context.Context, caller auth.Caller, req models.CreateEventRequest) (*models.Event, error) {
	id, ok := caller.Identity()
	if !ok {
		return nil, newError(KindUnauthorized, "authentication required")
	}

	fields := models.EventFields{
		Title:          req.Title,
		Date:           req.Date,
		Time:           req.Time,
		Location:       req.Location,
		Description:    req.Description,
		Category:       req.Category,
		DietaryOptions: req.DietaryOptions,
		MusicOptions:   req.MusicOptions,
	}
	fields, err := cleanFields(fields)
	if err != nil {
		return nil, err
	}

	eventID, err := auth.GenerateID(16)
	if err != nil {
		s.logger.Error("failed to generate event id", "error", err)
		return nil, &Error{Kind: KindStoreUnavailable, Message: "could not allocate event id", Err: err}
	}

	ev := &models.Event{
		ID:              eventID,
		Title:           fields.Title,
		Date:            fields.Date,
		Time:            fields.Time,
		Location:        fields.Location,
		Description:     fields.Description,
		Category:        fields.Category,
		HostID:          id.ID,
		HostEmail:       id.Email,
		CreatedAt:       s.now(),
		DietaryOptions:  fields.DietaryOptions,
		MusicOptions:    fields.MusicOptions,
		SharedMediaLink: NormalizeLink(req.SharedMediaLink),
		RSVPs:           map[string]models.RsvpEntry{},
		PollResponses:   map[string]models.PollEntry{},
	}

	if err := s.store.CreateEvent(ctx, ev); err != nil {
		s.logger.Error("failed to create event", "error", err)
		return nil, storeError(err)
	}

	s.logger.Info("event created", "event_id", ev.ID, "host_id", ev.HostID, "title", ev.Title)
	return ev, nil
}

// Get returns the full aggregate to its host.
func (s *Service) Get(ctx context.Context, eventID string, caller auth.Caller) (*models.Event, error) {
	return s.loadHostedEvent(ctx, eventID, caller)
}

// ReplaceFields overwrites the host-editable fields. Responses and the
// media link are left untouched.
func (s *Service) ReplaceFields(ctx context.Context, eventID string, caller auth.Caller, f models.EventFields) (*models.Event, error) {
	if !caller.IsAuthenticated() {
		return nil, newError(KindUnauthorized, "authentication required")
	}

	f, err := cleanFields(f)
	if err != nil {
		return nil, err
	}

	if _, err := s.loadHostedEvent(ctx, eventID, caller); err != nil {
		return nil, err
	}

	err = s.store.UpdateEventFields(ctx, eventID, f)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindNotFound, "event not found")
	}
	if err != nil {
		s.logger.Error("failed to update event", "event_id", eventID, "error", err)
		return nil, storeError(err)
	}

	s.logger.Info("event updated", "event_id", eventID)
	return s.loadEvent(ctx, eventID)
}

// SetMediaLink stores the normalized link and returns it. An empty link
// clears it.
func (s *Service) SetMediaLink(ctx context.Context, eventID string, caller auth.Caller, link string) (string, error) {
	if _, err := s.loadHostedEvent(ctx, eventID, caller); err != nil {
		return "", err
	}

	normalized := NormalizeLink(link)
	err := s.store.SetMediaLink(ctx, eventID, normalized)
	if errors.Is(err, store.ErrNotFound) {
		return "", newError(KindNotFound, "event not found")
	}
	if err != nil {
		s.logger.Error("failed to set media link", "event_id", eventID, "error", err)
		return "", storeError(err)
	}

	s.logger.Info("media link updated", "event_id", eventID)
	return normalized, nil
}

// ListHostEvents returns the caller's events, newest first.
func (s *Service) ListHostEvents(ctx context.Context, caller auth.Caller) ([]models.EventSummary, error) {
	if !caller.IsAuthenticated() {
		return nil, newError(KindUnauthorized, "authentication required")
	}

	events, err := s.store.ListEventsByHost(ctx, caller.ID())
	if err != nil {
		s.logger.Error("failed to list events", "host_id", caller.ID(), "error", err)
		return nil, storeError(err)
	}
	return events, nil
}

// cleanFields trims every field, applies the default category, drops
// blank options and rejects a missing title, date, time or location.
func cleanFields(f models.EventFields) (models.EventFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.Location = strings.TrimSpace(f.Location)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)

	switch {
	case f.Title == "":
		return f, newError(KindInvalidInput, "title is required")
	case f.Date == "":
		return f, newError(KindInvalidInput, "date is required")
	case f.Time == "":
		return f, newError(KindInvalidInput, "time is required")
	case f.Location == "":
		return f, newError(KindInvalidInput, "location is required")
	}

	if f.Category == "" {
		f.Category = models.DefaultCategory
	}
	f.DietaryOptions = cleanOptions(f.DietaryOptions)
	f.MusicOptions = cleanOptions(f.MusicOptions)
	return f, nil
}

func cleanOptions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
