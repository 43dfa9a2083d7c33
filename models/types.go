// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// RSVP status constants
const (
	StatusGoing    = "going"
	StatusMaybe    = "maybe"
	StatusNotGoing = "not_going"
)

// NotSpecified is stored for poll choices the participant left blank.
const NotSpecified = "Not specified"

// DefaultCategory is applied when an event is created without a category.
const DefaultCategory = "General"

// AnonymousName is the display name for participants who give none.
const AnonymousName = "Anonymous"

// ValidStatus reports whether s is a recognized RSVP status.
func ValidStatus(s string) bool {
	switch s {
	case StatusGoing, StatusMaybe, StatusNotGoing:
		return true
	}
	return false
}

// Domain types

// Event is the aggregate for one published gathering. AttendeeCount,
// RSVPs and PollResponses are assembled from the participant records
// on load and are never written through this struct.
type Event struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Date            string               `json:"date"`
	Time            string               `json:"time"`
	Location        string               `json:"location"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	HostID          string               `json:"host_id"`
	HostEmail       string               `json:"host_email"`
	CreatedAt       time.Time            `json:"created_at"`
	DietaryOptions  []string             `json:"dietary_options"`
	MusicOptions    []string             `json:"music_options"`
	SharedMediaLink string               `json:"shared_media_link"`
	AttendeeCount   int                  `json:"attendee_count"`
	RSVPs           map[string]RsvpEntry `json:"rsvps"`
	PollResponses   map[string]PollEntry `json:"poll_responses"`
}

type RsvpEntry struct {
	DisplayName string    `json:"display_name"`
	Status      string    `json:"status"`
	RespondedAt time.Time `json:"responded_at"`
}

type PollEntry struct {
	DietaryChoice string    `json:"dietary_choice"`
	MusicChoice   string    `json:"music_choice"`
	DisplayName   string    `json:"display_name"`
	RespondedAt   time.Time `json:"responded_at"`
}

// EventFields is the allow-list of host-editable fields.
type EventFields struct {
	Title          string   `json:"title"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	DietaryOptions []string `json:"dietary_options"`
	MusicOptions   []string `json:"music_options"`
}

// Counters are the derived totals returned after a response is merged.
type Counters struct {
	AttendeeCount int `json:"attendee_count"`
	RSVPCount     int `json:"rsvp_count"`
	PollCount     int `json:"poll_count"`
}

// EventSummary is one row of a host's event listing.
type EventSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	AttendeeCount int       `json:"attendee_count"`
	PollCount     int       `json:"poll_count"`
}

// Request types

type CreateEventRequest struct {
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	DietaryOptions  []string `json:"dietary_options"`
	MusicOptions    []string `json:"music_options"`
	SharedMediaLink string   `json:"shared_media_link"`
}

type UpdateEventRequest = EventFields

type SetMediaLinkRequest struct {
	SharedMediaLink string `json:"shared_media_link"`
}

// SubmitRSVPRequest is the share page form: status is required, the
// poll choices ride along and are stored as a poll response when present.
type SubmitRSVPRequest struct {
	Status        string `json:"status"`
	DietaryChoice string `json:"dietary_choice"`
	MusicChoice   string `json:"music_choice"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
}

type SubmitPollRequest struct {
	DietaryChoice string `json:"dietary_choice"`
	MusicChoice   string `json:"music_choice"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
}

// Response types

type CreateEventResponse struct {
	EventID         string `json:"event_id"`
	SharedMediaLink string `json:"shared_media_link"`
	ShareURL        string `json:"share_url"`
}

type SubmitResponse struct {
	Message string `json:"message"`
	Counters
}

type ListEventsResponse struct {
	Events []EventSummary `json:"events"`
}

type SetMediaLinkResponse struct {
	SharedMediaLink string `json:"shared_media_link"`
}

// PollResults is the host-facing analytics projection.
type PollResults struct {
	EventTitle      string               `json:"event_title"`
	TotalResponses  int                  `json:"total_responses"`
	DietaryOptions  []string             `json:"dietary_options"`
	MusicOptions    []string             `json:"music_options"`
	Results         ChoiceTallies        `json:"results"`
	Responses       map[string]PollEntry `json:"responses"`
	SharedMediaLink string               `json:"shared_media_link"`
}

type ChoiceTallies struct {
	Dietary map[string]int `json:"dietary"`
	Music   map[string]int `json:"music"`
}

// ShareView is what an unauthenticated guest sees. It never carries the
// response maps or the host identity.
type ShareView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	AttendeeCount   int      `json:"attendee_count"`
	ResponseCount   int      `json:"response_count"`
	DietaryOptions  []string `json:"dietary_options"`
	MusicOptions    []string `json:"music_options"`
	SharedMediaLink string   `json:"shared_media_link"`
	ShareURL        string   `json:"share_url,omitempty"`
}

type Attendee struct {
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	RespondedAt time.Time `json:"responded_at"`
}

type AttendeesResponse struct {
	Attendees []Attendee `json:"attendees"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
