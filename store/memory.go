// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ST10291541/ToastAPI/models"
)

type memEvent struct {
	event models.Event
	rsvps map[string]models.RsvpEntry
	polls map[string]models.PollEntry
}

// MemoryStore keeps everything in process memory. Every method holds the
// lock for its whole read or write, and reads return copies.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string]*memEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string]*memEvent)}
}

func (m *MemoryStore) CreateEvent(ctx context.Context, ev *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[ev.ID]; ok {
		return fmt.Errorf("event %s: %w", ev.ID, ErrExists)
	}

	stored := *ev
	stored.DietaryOptions = cloneStrings(ev.DietaryOptions)
	stored.MusicOptions = cloneStrings(ev.MusicOptions)
	stored.RSVPs = nil
	stored.PollResponses = nil
	stored.AttendeeCount = 0

	m.events[ev.ID] = &memEvent{
		event: stored,
		rsvps: make(map[string]models.RsvpEntry),
		polls: make(map[string]models.PollEntry),
	}
	return nil
}

func (m *MemoryStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}

	ev := rec.event
	ev.DietaryOptions = cloneStrings(rec.event.DietaryOptions)
	ev.MusicOptions = cloneStrings(rec.event.MusicOptions)
	ev.RSVPs = make(map[string]models.RsvpEntry, len(rec.rsvps))
	for k, v := range rec.rsvps {
		ev.RSVPs[k] = v
	}
	ev.PollResponses = make(map[string]models.PollEntry, len(rec.polls))
	for k, v := range rec.polls {
		ev.PollResponses[k] = v
	}
	ev.AttendeeCount = countGoing(ev.RSVPs)

	return &ev, nil
}

func (m *MemoryStore) ListEventsByHost(ctx context.Context, hostID string) ([]models.EventSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := []models.EventSummary{}
	for _, rec := range m.events {
		if rec.event.HostID != hostID {
			continue
		}
		events = append(events, models.EventSummary{
			ID:            rec.event.ID,
			Title:         rec.event.Title,
			Date:          rec.event.Date,
			Time:          rec.event.Time,
			Location:      rec.event.Location,
			Category:      rec.event.Category,
			CreatedAt:     rec.event.CreatedAt,
			AttendeeCount: countGoing(rec.rsvps),
			PollCount:     len(rec.polls),
		})
	}

	// Newest first, matching the SQL store
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	return events, nil
}

func (m *MemoryStore) UpdateEventFields(ctx context.Context, id string, f models.EventFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.events[id]
	if !ok {
		return ErrNotFound
	}

	rec.event.Title = f.Title
	rec.event.Date = f.Date
	rec.event.Time = f.Time
	rec.event.Location = f.Location
	rec.event.Description = f.Description
	rec.event.Category = f.Category
	rec.event.DietaryOptions = cloneStrings(f.DietaryOptions)
	rec.event.MusicOptions = cloneStrings(f.MusicOptions)
	return nil
}

func (m *MemoryStore) SetMediaLink(ctx context.Context, id, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.events[id]
	if !ok {
		return ErrNotFound
	}
	rec.event.SharedMediaLink = link
	return nil
}

func (m *MemoryStore) SaveResponse(ctx context.Context, eventID, key string, rsvp *models.RsvpEntry, poll *models.PollEntry) (models.Counters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.events[eventID]
	if !ok {
		return models.Counters{}, ErrNotFound
	}

	if rsvp != nil {
		rec.rsvps[key] = *rsvp
	}
	if poll != nil {
		rec.polls[key] = *poll
	}

	return models.Counters{
		AttendeeCount: countGoing(rec.rsvps),
		RSVPCount:     len(rec.rsvps),
		PollCount:     len(rec.polls),
	}, nil
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
