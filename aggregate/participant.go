// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"strings"

	"github.com/ST10291541/ToastAPI/auth"
	"github.com/ST10291541/ToastAPI/models"
)

// Participant key prefixes keep the three identity sources from colliding.
const (
	keyPrefixUser  = "user:"
	keyPrefixEmail = "email:"
	keyPrefixGuest = "guest:"
)

// ParticipantKey picks the key a response is stored under, in priority
// order: verified user id, supplied email, then the caller's guest token.
func ParticipantKey(caller auth.Caller, email string) string {
	if caller.IsAuthenticated() {
		return keyPrefixUser + caller.ID()
	}

	if e := normalizeEmail(email); e != "" {
		return keyPrefixEmail + e
	}

	token := caller.GuestToken()
	if token == "" {
		token = auth.NewGuest().GuestToken()
	}
	return keyPrefixGuest + token
}

// DisplayName picks the name shown next to a response.
func DisplayName(caller auth.Caller, supplied, email string) string {
	if name := strings.TrimSpace(supplied); name != "" {
		return name
	}
	if id, ok := caller.Identity(); ok {
		if id.DisplayName != "" {
			return id.DisplayName
		}
		if id.Email != "" {
			return id.Email
		}
	}
	if e := normalizeEmail(email); e != "" {
		return e
	}
	return models.AnonymousName
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
