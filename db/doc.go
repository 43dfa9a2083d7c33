// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open picks the driver by type and pings the server:

	conn, err := db.Open("postgres", "postgres://...")  // github.com/lib/pq
	conn, err := db.Open("sqlite", "file:toast.db")    // modernc.org/sqlite

SQLite connections are limited to one open connection and get
foreign_keys and busy_timeout pragmas unless the URL already sets pragmas.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on PostgreSQL and SQLite.

# Tables

  - event: descriptive fields, host identity, poll option lists (JSON text)
  - rsvp: one row per (event_id, participant_key)
  - poll_response: one row per (event_id, participant_key)

There is no attendee_count column. The count is always derived from rsvp
rows with status 'going', so concurrent responders never overwrite each
other's entries or a shared counter.

# Relationships

	event 1──* rsvp
	event 1──* poll_response

# Indexes

  - event.host_id
  - rsvp.(event_id, status)
*/
package db
