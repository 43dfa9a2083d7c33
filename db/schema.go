// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are valid on both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Events
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    event_date TEXT NOT NULL,
    event_time TEXT NOT NULL,
    location TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT 'General',
    host_id TEXT NOT NULL,
    host_email TEXT NOT NULL DEFAULT '',
    dietary_options TEXT NOT NULL DEFAULT '[]',
    music_options TEXT NOT NULL DEFAULT '[]',
    shared_media_link TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_host_id ON event(host_id);

-- RSVPs: one row per participant per event
CREATE TABLE IF NOT EXISTS rsvp (
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    participant_key TEXT NOT NULL,
    display_name TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('going', 'maybe', 'not_going')),
    responded_at TIMESTAMP NOT NULL,
    PRIMARY KEY (event_id, participant_key)
);

CREATE INDEX IF NOT EXISTS idx_rsvp_event_status ON rsvp(event_id, status);

-- Poll responses: one row per participant per event
CREATE TABLE IF NOT EXISTS poll_response (
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    participant_key TEXT NOT NULL,
    display_name TEXT NOT NULL,
    dietary_choice TEXT NOT NULL,
    music_choice TEXT NOT NULL,
    responded_at TIMESTAMP NOT NULL,
    PRIMARY KEY (event_id, participant_key)
);
`
