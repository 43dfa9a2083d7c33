// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Toast API server.

Toast lets a host publish an event and collect guest responses: an RSVP
status, a dietary pick and a song suggestion. Hosts see attendee counts
and choice tallies computed from those responses.

# Starting the Server

Configuration comes from flags, the environment, a .env file or a YAML
file named by -config:

	AUTH_SECRET=... go run .

	go run . -p 3000 -t postgres -d "postgres://..." --auth-secret ...

SQLite (file:toast.db) is the default store. Use -t memory for a
throwaway server.

# Configuration

Required settings:

  - AUTH_SECRET (--auth-secret): HMAC key for bearer tokens
  - DATABASE_URL (-d): required when DATABASE_TYPE is postgres

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - BASE_URL (--base-url): Prefix for share links (default: http://localhost:<port>)
  - LOG_LEVEL (--log-level): debug, info, warn or error (default: info)
  - CONFIG_FILE (-config): YAML file with the same settings

# Tokens

For local development, print a host token and exit:

	go run . --issue-token "host-1:host@example.com:Host Name"

# Architecture

  - aggregate: response merging, result projection, event lifecycle
  - store: SQL (PostgreSQL, SQLite) and in-memory persistence
  - handlers: HTTP request handlers (events, responses, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: caller resolution, CORS, logging, JSON helpers
  - models: Persisted shapes and request/response types
  - auth: Bearer tokens, callers and ID generation
  - db: Driver selection and schema creation
  - calendar: iCalendar export of shared events
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
