// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves who is calling and generates identifiers.

# Bearer Tokens

Hosts authenticate with HMAC-SHA256 signed tokens:

	token, err := auth.IssueToken(auth.Identity{ID: uid, Email: email}, secret, 24*time.Hour)
	id, err := auth.VerifyToken(token, secret)

The token is the URL-safe base64 JSON claims (uid, email, name, exp) followed
by a dot and the URL-safe base64 signature, both without padding.

# Callers

Every request is resolved to a Caller:

	caller, err := auth.ResolveCaller(r.Header.Get("Authorization"), secret)

No header yields a guest with a fresh random token (github.com/google/uuid).
Guest tokens are minted once per request and never looked up again, so an
anonymous guest who gives no email gets a new participant entry each time.

A header that is present but not a valid "Bearer <token>" is an error
(ErrInvalidToken or ErrExpiredToken).

# ID Generation

Random hex IDs for event records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
