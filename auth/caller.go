// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"

	"github.com/google/uuid"
)

// Caller is either an authenticated identity or a guest. Guests carry a
// token minted once per request; it is never stored as a credential or
// looked up again.
type Caller struct {
	identity   *Identity
	guestToken string
}

// Authenticated wraps a verified identity.
func Authenticated(id Identity) Caller {
	return Caller{identity: &id}
}

// NewGuest mints a fresh provisional caller.
func NewGuest() Caller {
	return Caller{guestToken: uuid.NewString()}
}

// IsAuthenticated reports whether the caller has a verified id.
func (c Caller) IsAuthenticated() bool {
	return c.identity != nil && c.identity.ID != ""
}

// Identity returns the verified identity; ok is false for guests.
func (c Caller) Identity() (Identity, bool) {
	if !c.IsAuthenticated() {
		return Identity{}, false
	}
	return *c.identity, true
}

// ID is the verified user id, or "" for guests.
func (c Caller) ID() string {
	if !c.IsAuthenticated() {
		return ""
	}
	return c.identity.ID
}

// GuestToken is the provisional token, or "" for authenticated callers.
func (c Caller) GuestToken() string {
	return c.guestToken
}

// ResolveCaller turns an Authorization header value into a Caller.
// An empty header yields a guest; a malformed or unverifiable one is an error.
func ResolveCaller(header, secret string) (Caller, error) {
	if header == "" {
		return NewGuest(), nil
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return Caller{}, ErrInvalidToken
	}

	id, err := VerifyToken(strings.TrimSpace(token), secret)
	if err != nil {
		return Caller{}, err
	}
	return Authenticated(id), nil
}
