// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ST10291541/ToastAPI/models"
)

// SQLStore keeps one row per event and one row per (event, participant)
// in rsvp and poll_response. Works on PostgreSQL and SQLite.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreateEvent(ctx context.Context, ev *models.Event) error {
	dietary, err := encodeOptions(ev.DietaryOptions)
	if err != nil {
		return err
	}
	music, err := encodeOptions(ev.MusicOptions)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO event (id, title, event_date, event_time, location, description, category,
		                   host_id, host_email, dietary_options, music_options, shared_media_link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, ev.ID, ev.Title, ev.Date, ev.Time, ev.Location, ev.Description, ev.Category,
		ev.HostID, ev.HostEmail, dietary, music, ev.SharedMediaLink, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", classify(err))
	}

	return nil
}

func (s *SQLStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var ev models.Event
	var dietary, music string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, event_date, event_time, location, description, category,
		       host_id, host_email, dietary_options, music_options, shared_media_link, created_at
		FROM event
		WHERE id = $1
	`, id).Scan(
		&ev.ID, &ev.Title, &ev.Date, &ev.Time, &ev.Location, &ev.Description, &ev.Category,
		&ev.HostID, &ev.HostEmail, &dietary, &music, &ev.SharedMediaLink, &ev.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", classify(err))
	}

	if ev.DietaryOptions, err = decodeOptions(dietary); err != nil {
		return nil, err
	}
	if ev.MusicOptions, err = decodeOptions(music); err != nil {
		return nil, err
	}

	ev.RSVPs, err = s.loadRSVPs(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.PollResponses, err = s.loadPollResponses(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.AttendeeCount = countGoing(ev.RSVPs)

	return &ev, nil
}

func (s *SQLStore) loadRSVPs(ctx context.Context, eventID string) (map[string]models.RsvpEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT participant_key, display_name, status, responded_at
		FROM rsvp
		WHERE event_id = $1
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rsvps: %w", classify(err))
	}
	defer rows.Close()

	rsvps := make(map[string]models.RsvpEntry)
	for rows.Next() {
		var key string
		var r models.RsvpEntry
		if err := rows.Scan(&key, &r.DisplayName, &r.Status, &r.RespondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rsvp: %w", err)
		}
		rsvps[key] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rsvps: %w", classify(err))
	}

	return rsvps, nil
}

func (s *SQLStore) loadPollResponses(ctx context.Context, eventID string) (map[string]models.PollEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT participant_key, display_name, dietary_choice, music_choice, responded_at
		FROM poll_response
		WHERE event_id = $1
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll responses: %w", classify(err))
	}
	defer rows.Close()

	polls := make(map[string]models.PollEntry)
	for rows.Next() {
		var key string
		var p models.PollEntry
		if err := rows.Scan(&key, &p.DisplayName, &p.DietaryChoice, &p.MusicChoice, &p.RespondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll response: %w", err)
		}
		polls[key] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read poll responses: %w", classify(err))
	}

	return polls, nil
}

func (s *SQLStore) ListEventsByHost(ctx context.Context, hostID string) ([]models.EventSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			e.id,
			e.title,
			e.event_date,
			e.event_time,
			e.location,
			e.category,
			e.created_at,
			(SELECT COUNT(*) FROM rsvp r WHERE r.event_id = e.id AND r.status = $2) AS attendee_count,
			(SELECT COUNT(*) FROM poll_response p WHERE p.event_id = e.id) AS poll_count
		FROM event e
		WHERE e.host_id = $1
		ORDER BY e.created_at DESC
	`, hostID, models.StatusGoing)
	if err != nil {
		return nil, fmt.Errorf("failed to query host events: %w", classify(err))
	}
	defer rows.Close()

	events := []models.EventSummary{}
	for rows.Next() {
		var e models.EventSummary
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Category,
			&e.CreatedAt, &e.AttendeeCount, &e.PollCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read host events: %w", classify(err))
	}

	return events, nil
}

func (s *SQLStore) UpdateEventFields(ctx context.Context, id string, f models.EventFields) error {
	dietary, err := encodeOptions(f.DietaryOptions)
	if err != nil {
		return err
	}
	music, err := encodeOptions(f.MusicOptions)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE event
		SET title = $1, event_date = $2, event_time = $3, location = $4, description = $5,
		    category = $6, dietary_options = $7, music_options = $8
		WHERE id = $9
	`, f.Title, f.Date, f.Time, f.Location, f.Description, f.Category, dietary, music, id)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", classify(err))
	}

	return expectOneRow(res)
}

func (s *SQLStore) SetMediaLink(ctx context.Context, id, link string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE event SET shared_media_link = $1 WHERE id = $2
	`, link, id)
	if err != nil {
		return fmt.Errorf("failed to update media link: %w", classify(err))
	}

	return expectOneRow(res)
}

func (s *SQLStore) SaveResponse(ctx context.Context, eventID, key string, rsvp *models.RsvpEntry, poll *models.PollEntry) (models.Counters, error) {
	var counters models.Counters

	// Begin transaction for UPSERT
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return counters, fmt.Errorf("failed to begin transaction: %w", classify(err))
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM event WHERE id = $1)
	`, eventID).Scan(&exists)
	if err != nil {
		return counters, fmt.Errorf("failed to check event: %w", classify(err))
	}
	if !exists {
		return counters, ErrNotFound
	}

	if rsvp != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rsvp (event_id, participant_key, display_name, status, responded_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (event_id, participant_key) DO UPDATE SET
				display_name = EXCLUDED.display_name,
				status = EXCLUDED.status,
				responded_at = EXCLUDED.responded_at
		`, eventID, key, rsvp.DisplayName, rsvp.Status, rsvp.RespondedAt)
		if err != nil {
			return counters, fmt.Errorf("failed to upsert rsvp: %w", classify(err))
		}
	}

	if poll != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_response (event_id, participant_key, display_name, dietary_choice, music_choice, responded_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (event_id, participant_key) DO UPDATE SET
				display_name = EXCLUDED.display_name,
				dietary_choice = EXCLUDED.dietary_choice,
				music_choice = EXCLUDED.music_choice,
				responded_at = EXCLUDED.responded_at
		`, eventID, key, poll.DisplayName, poll.DietaryChoice, poll.MusicChoice, poll.RespondedAt)
		if err != nil {
			return counters, fmt.Errorf("failed to upsert poll response: %w", classify(err))
		}
	}

	err = tx.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM rsvp WHERE event_id = $1 AND status = $2),
			(SELECT COUNT(*) FROM rsvp WHERE event_id = $1),
			(SELECT COUNT(*) FROM poll_response WHERE event_id = $1)
	`, eventID, models.StatusGoing).Scan(&counters.AttendeeCount, &counters.RSVPCount, &counters.PollCount)
	if err != nil {
		return models.Counters{}, fmt.Errorf("failed to count responses: %w", classify(err))
	}

	if err := tx.Commit(); err != nil {
		return models.Counters{}, fmt.Errorf("failed to commit response: %w", classify(err))
	}

	return counters, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeOptions(opts []string) (string, error) {
	if opts == nil {
		opts = []string{}
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	return string(b), nil
}

func decodeOptions(s string) ([]string, error) {
	opts := []string{}
	if s == "" {
		return opts, nil
	}
	if err := json.Unmarshal([]byte(s), &opts); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return opts, nil
}
