// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ST10291541/ToastAPI/auth"
	"github.com/ST10291541/ToastAPI/cliparse"
	"github.com/ST10291541/ToastAPI/db"
	"github.com/ST10291541/ToastAPI/models"
	"github.com/ST10291541/ToastAPI/store"
)

// TestAuthSecret signs every token issued by the helpers below
const TestAuthSecret = "test-auth-secret"

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in t.TempDir() and is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns an SQLStore over a fresh test database
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	return store.NewSQLStore(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseType: cliparse.DatabaseSQLite,
		AuthSecret:   TestAuthSecret,
		BaseURL:      "https://toast.test",
		LogLevel:     "debug",
	}
}

// TestToken issues a bearer token for the given user id
func TestToken(t *testing.T, uid string) string {
	t.Helper()

	token, err := auth.IssueToken(auth.Identity{ID: uid, Email: uid + "@example.com", DisplayName: uid}, TestAuthSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// AuthHeader returns the Authorization header map for uid
func AuthHeader(t *testing.T, uid string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + TestToken(t, uid)}
}

// CreateTestEvent stores an event hosted by hostID and returns its ID
func CreateTestEvent(t *testing.T, s store.Store, hostID string, dietary, music []string) string {
	t.Helper()

	eventID, _ := auth.GenerateID(16)
	err := s.CreateEvent(context.Background(), &models.Event{
		ID:             eventID,
		Title:          "Test Event",
		Date:           "2026-12-31",
		Time:           "20:00",
		Location:       "Cape Town",
		Description:    "A test event",
		Category:       models.DefaultCategory,
		HostID:         hostID,
		HostEmail:      hostID + "@example.com",
		CreatedAt:      time.Now().UTC(),
		DietaryOptions: dietary,
		MusicOptions:   music,
	})
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return eventID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
