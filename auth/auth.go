// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Identity is a verified user as carried in a bearer token.
type Identity struct {
	ID          string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"name,omitempty"`
}

// ParseIdentity reads "uid:email[:name]" as used by the -issue-token flag.
func ParseIdentity(s string) (Identity, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return Identity{}, fmt.Errorf("identity %q must look like uid:email[:name]", s)
	}

	id := Identity{ID: strings.TrimSpace(parts[0]), Email: strings.TrimSpace(parts[1])}
	if len(parts) == 3 {
		id.DisplayName = strings.TrimSpace(parts[2])
	}
	return id, nil
}

type claims struct {
	Identity
	ExpiresAt int64 `json:"exp"`
}

// IssueToken signs an identity into a bearer token.
// Format: base64url(json claims) + "." + base64url(HMAC-SHA256(payload))
func IssueToken(id Identity, secret string, ttl time.Duration) (string, error) {
	if id.ID == "" {
		return "", errors.New("identity id is required")
	}

	payload, err := json.Marshal(claims{Identity: id, ExpiresAt: time.Now().Add(ttl).Unix()})
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}

	encoded := encode(payload)
	return encoded + "." + sign(encoded, secret), nil
}

// VerifyToken checks the signature and expiry and returns the identity
func VerifyToken(token, secret string) (Identity, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || sig == "" {
		return Identity{}, ErrInvalidToken
	}

	if !hmac.Equal([]byte(sig), []byte(sign(encoded, secret))) {
		return Identity{}, ErrInvalidToken
	}

	payload, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(encoded)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil || c.ID == "" {
		return Identity{}, ErrInvalidToken
	}

	if time.Now().Unix() >= c.ExpiresAt {
		return Identity{}, ErrExpiredToken
	}

	return c.Identity, nil
}

func sign(encoded, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(encoded))
	return encode(h.Sum(nil))
}

// URL-safe base64 without padding
func encode(b []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
}
