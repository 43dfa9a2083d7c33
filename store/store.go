// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ST10291541/ToastAPI/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict means a concurrent writer invalidated the operation;
	// retrying it is safe.
	ErrConflict = errors.New("write conflict")
	ErrExists   = errors.New("already exists")
)

// Store persists events and their per-participant responses.
type Store interface {
	CreateEvent(ctx context.Context, ev *models.Event) error

	// GetEvent returns the full aggregate: descriptive fields, both response
	// maps and an AttendeeCount derived from the RSVP entries.
	GetEvent(ctx context.Context, id string) (*models.Event, error)

	ListEventsByHost(ctx context.Context, hostID string) ([]models.EventSummary, error)
	UpdateEventFields(ctx context.Context, id string, f models.EventFields) error
	SetMediaLink(ctx context.Context, id, link string) error

	// SaveResponse upserts the non-nil entries for (eventID, key) and
	// returns the counters as of the write. It is all-or-nothing.
	SaveResponse(ctx context.Context, eventID, key string, rsvp *models.RsvpEntry, poll *models.PollEntry) (models.Counters, error)
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// classify maps retryable driver failures to ErrConflict and duplicate keys
// to ErrExists, keeping the original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %w", ErrConflict, err)
		case "23505": // unique_violation
			return fmt.Errorf("%w: %w", ErrExists, err)
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %w", ErrExists, err)
		}
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
	}

	return err
}

func countGoing(rsvps map[string]models.RsvpEntry) int {
	n := 0
	for _, r := range rsvps {
		if r.Status == models.StatusGoing {
			n++
		}
	}
	return n
}
