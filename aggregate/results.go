// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"context"
	"sort"

	"github.com/ST10291541/ToastAPI/auth"
	"github.com/ST10291541/ToastAPI/models"
)

// PollResults returns the host's analytics view of the event. It never writes.
func (s *Service) PollResults(ctx context.Context, eventID string, caller auth.Caller) (*models.PollResults, error) {
	ev, err := s.loadHostedEvent(ctx, eventID, caller)
	if err != nil {
		return nil, err
	}

	results := ProjectPollResults(ev)
	return &results, nil
}

// ProjectPollResults builds the dietary and music frequency tables from
// the event's poll responses. "Not specified" choices are not counted.
func ProjectPollResults(ev *models.Event) models.PollResults {
	tallies := models.ChoiceTallies{
		Dietary: make(map[string]int),
		Music:   make(map[string]int),
	}

	responses := make(map[string]models.PollEntry, len(ev.PollResponses))
	for key, p := range ev.PollResponses {
		responses[key] = p
		if p.DietaryChoice != models.NotSpecified {
			tallies.Dietary[p.DietaryChoice]++
		}
		if p.MusicChoice != models.NotSpecified {
			tallies.Music[p.MusicChoice]++
		}
	}

	return models.PollResults{
		EventTitle:      ev.Title,
		TotalResponses:  len(ev.PollResponses),
		DietaryOptions:  nonNil(ev.DietaryOptions),
		MusicOptions:    nonNil(ev.MusicOptions),
		Results:         tallies,
		Responses:       responses,
		SharedMediaLink: ev.SharedMediaLink,
	}
}

// Attendees lists every RSVP on the event, oldest response first.
func (s *Service) Attendees(ctx context.Context, eventID string, caller auth.Caller) ([]models.Attendee, error) {
	ev, err := s.loadHostedEvent(ctx, eventID, caller)
	if err != nil {
		return nil, err
	}

	attendees := make([]models.Attendee, 0, len(ev.RSVPs))
	for _, r := range ev.RSVPs {
		attendees = append(attendees, models.Attendee{
			Name:        r.DisplayName,
			Status:      r.Status,
			RespondedAt: r.RespondedAt,
		})
	}

	sort.Slice(attendees, func(i, j int) bool {
		if !attendees[i].RespondedAt.Equal(attendees[j].RespondedAt) {
			return attendees[i].RespondedAt.Before(attendees[j].RespondedAt)
		}
		return attendees[i].Name < attendees[j].Name
	})

	return attendees, nil
}

// ShareView returns the public subset of the event for the RSVP page.
func (s *Service) ShareView(ctx context.Context, eventID string) (*models.ShareView, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &models.ShareView{
		ID:              ev.ID,
		Title:           ev.Title,
		Date:            ev.Date,
		Time:            ev.Time,
		Location:        ev.Location,
		Description:     ev.Description,
		Category:        ev.Category,
		AttendeeCount:   ev.AttendeeCount,
		ResponseCount:   len(ev.RSVPs),
		DietaryOptions:  nonNil(ev.DietaryOptions),
		MusicOptions:    nonNil(ev.MusicOptions),
		SharedMediaLink: ev.SharedMediaLink,
		ShareURL:        s.ShareURL(ev.ID),
	}, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
