// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ST10291541/ToastAPI/auth"
	"github.com/ST10291541/ToastAPI/models"
	"github.com/ST10291541/ToastAPI/store"
)

// maxAttempts bounds how often a conflicting write is retried.
const maxAttempts = 3

// Service implements event creation and editing, response merging and
// the read-side projections over one Store.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	baseURL string
	now     func() time.Time
}

// NewService wires a Service. baseURL is used to build share links and
// may be empty.
func NewService(s store.Store, logger *slog.Logger, baseURL string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   s,
		logger:  logger,
		baseURL: baseURL,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ShareURL is the public link guests use to respond.
func (s *Service) ShareURL(eventID string) string {
	if s.baseURL == "" {
		return ""
	}
	return s.baseURL + "/api/share/" + eventID
}

// loadEvent maps store failures onto Error kinds.
func (s *Service) loadEvent(ctx context.Context, eventID string) (*models.Event, error) {
	ev, err := s.store.GetEvent(ctx, eventID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindNotFound, "event not found")
	}
	if err != nil {
		s.logger.Error("failed to load event", "event_id", eventID, "error", err)
		return nil, storeError(err)
	}
	return ev, nil
}

// loadHostedEvent loads the event and checks that caller is its host.
func (s *Service) loadHostedEvent(ctx context.Context, eventID string, caller auth.Caller) (*models.Event, error) {
	if !caller.IsAuthenticated() {
		return nil, newError(KindUnauthorized, "authentication required")
	}

	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if ev.HostID != caller.ID() {
		return nil, newError(KindForbidden, "only the event host can do this")
	}
	return ev, nil
}
