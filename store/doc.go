// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists events and per-participant responses.

Two implementations satisfy Store:

	st := store.NewSQLStore(conn)   // PostgreSQL or SQLite via database/sql
	st := store.NewMemoryStore()    // tests and DATABASE_TYPE=memory

SaveResponse is the only write path for responses. It upserts the RSVP
and/or poll row for (event_id, participant_key) and counts the rows in
one transaction, so a failed call leaves nothing behind.

Errors:

  - ErrNotFound: the event does not exist
  - ErrConflict: the driver reported a serialization failure, deadlock or
    SQLite BUSY/LOCKED; the call may be retried
*/
package store
