// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ST10291541/ToastAPI/aggregate"
	"github.com/ST10291541/ToastAPI/auth"
	"github.com/ST10291541/ToastAPI/models"
	"github.com/ST10291541/ToastAPI/store"
	"github.com/ST10291541/ToastAPI/testutil"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// flakyStore fails SaveResponse with saveErr for the first failures calls
type flakyStore struct {
	store.Store
	saveErr  error
	failures int32
	calls    atomic.Int32
}

func (f *flakyStore) SaveResponse(ctx context.Context, eventID, key string, rsvp *models.RsvpEntry, poll *models.PollEntry) (models.Counters, error) {
	if f.calls.Add(1) <= f.failures {
		return models.Counters{}, f.saveErr
	}
	return f.Store.SaveResponse(ctx, eventID, key, rsvp, poll)
}

func eachStore(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, store.NewMemoryStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, testutil.SetupTestStore(t))
	})
}

func host(id string) auth.Caller {
	return auth.Authenticated(auth.Identity{ID: id, Email: id + "@example.com", DisplayName: id})
}

func createEvent(t *testing.T, svc *aggregate.Service, hostID string) *models.Event {
	t.Helper()

	ev, err := svc.Create(context.Background(), host(hostID), models.CreateEventRequest{
		Title:          "Braai",
		Date:           "2026-12-31",
		Time:           "18:00",
		Location:       "Durban",
		DietaryOptions: []string{"Vegan", "None"},
		MusicOptions:   []string{"Jazz", "House"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return ev
}

func assertKind(t *testing.T, err error, want aggregate.Kind) {
	t.Helper()
	if got := aggregate.KindOf(err); got != want {
		t.Errorf("error kind = %q, want %q (err: %v)", got, want, err)
	}
}

func TestCreateEvent(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "https://toast.test")
		ctx := context.Background()

		ev, err := svc.Create(ctx, host("h1"), models.CreateEventRequest{
			Title:           "  Launch  ",
			Date:            "2026-01-01",
			Time:            "09:00",
			Location:        "Joburg",
			DietaryOptions:  []string{"Vegan", " ", "Halal"},
			SharedMediaLink: "photos.example/launch",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if len(ev.ID) != 32 {
			t.Errorf("expected 32 char id, got %q", ev.ID)
		}
		if ev.Category != models.DefaultCategory {
			t.Errorf("Category = %q, want default", ev.Category)
		}
		if ev.SharedMediaLink != "https://photos.example/launch" {
			t.Errorf("SharedMediaLink = %q", ev.SharedMediaLink)
		}

		got, err := svc.Get(ctx, ev.ID, host("h1"))
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Title != "Launch" || got.HostID != "h1" || got.HostEmail != "h1@example.com" {
			t.Errorf("stored event = %+v", got)
		}
		if len(got.DietaryOptions) != 2 || got.DietaryOptions[1] != "Halal" {
			t.Errorf("DietaryOptions = %v, want blanks dropped", got.DietaryOptions)
		}
		if got.AttendeeCount != 0 || len(got.RSVPs) != 0 || len(got.PollResponses) != 0 {
			t.Errorf("new event should be empty: %+v", got)
		}
	})
}

func TestCreateEventValidation(t *testing.T) {
	svc := aggregate.NewService(store.NewMemoryStore(), discard, "")
	valid := models.CreateEventRequest{Title: "T", Date: "D", Time: "9", Location: "L"}

	tests := []struct {
		name   string
		caller auth.Caller
		mutate func(r *models.CreateEventRequest)
		want   aggregate.Kind
	}{
		{"guest", auth.NewGuest(), func(r *models.CreateEventRequest) {}, aggregate.KindUnauthorized},
		{"missing title", host("h"), func(r *models.CreateEventRequest) { r.Title = " " }, aggregate.KindInvalidInput},
		{"missing date", host("h"), func(r *models.CreateEventRequest) { r.Date = "" }, aggregate.KindInvalidInput},
		{"missing time", host("h"), func(r *models.CreateEventRequest) { r.Time = "" }, aggregate.KindInvalidInput},
		{"missing location", host("h"), func(r *models.CreateEventRequest) { r.Location = "" }, aggregate.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), tt.caller, req)
			assertKind(t, err, tt.want)
		})
	}
}

func TestSubmitIdempotentUpsert(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")
		alice := host("alice")

		counters, err := svc.SubmitRSVP(ctx, ev.ID, alice, "going", "", "")
		if err != nil {
			t.Fatalf("first submit: %v", err)
		}
		if counters.AttendeeCount != 1 || counters.RSVPCount != 1 {
			t.Errorf("after going: %+v", counters)
		}

		counters, err = svc.SubmitRSVP(ctx, ev.ID, alice, "maybe", "", "")
		if err != nil {
			t.Fatalf("second submit: %v", err)
		}
		if counters.AttendeeCount != 0 || counters.RSVPCount != 1 {
			t.Errorf("after maybe: %+v", counters)
		}

		got, _ := svc.Get(ctx, ev.ID, host("h1"))
		if len(got.RSVPs) != 1 {
			t.Fatalf("expected one entry, got %d", len(got.RSVPs))
		}
		if got.RSVPs["user:alice"].Status != models.StatusMaybe {
			t.Errorf("entry = %+v, want latest status", got.RSVPs["user:alice"])
		}
	})
}

func TestSubmitCounterCorrectness(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		statuses := []string{"going", "maybe", "going", "not_going", "Going", "not going"}
		var last models.Counters
		for i, st := range statuses {
			c, err := svc.SubmitRSVP(ctx, ev.ID, auth.NewGuest(), st, "", fmt.Sprintf("p%d@example.com", i))
			if err != nil {
				t.Fatalf("submit %q: %v", st, err)
			}
			last = c
		}

		if last.AttendeeCount != 3 {
			t.Errorf("AttendeeCount = %d, want 3", last.AttendeeCount)
		}
		if last.RSVPCount != len(statuses) {
			t.Errorf("RSVPCount = %d, want %d", last.RSVPCount, len(statuses))
		}

		got, _ := svc.Get(ctx, ev.ID, host("h1"))
		going := 0
		for _, r := range got.RSVPs {
			if r.Status == models.StatusGoing {
				going++
			}
		}
		if got.AttendeeCount != going {
			t.Errorf("AttendeeCount %d does not match going entries %d", got.AttendeeCount, going)
		}
	})
}

func TestSubmitDefaultSubstitution(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		if _, err := svc.SubmitPoll(ctx, ev.ID, auth.NewGuest(), "", "Jazz", "Bo", "bo@example.com"); err != nil {
			t.Fatalf("SubmitPoll: %v", err)
		}

		results, err := svc.PollResults(ctx, ev.ID, host("h1"))
		if err != nil {
			t.Fatalf("PollResults: %v", err)
		}

		entry := results.Responses["email:bo@example.com"]
		if entry.DietaryChoice != models.NotSpecified {
			t.Errorf("DietaryChoice = %q, want %q", entry.DietaryChoice, models.NotSpecified)
		}
		if entry.DisplayName != "Bo" {
			t.Errorf("DisplayName = %q", entry.DisplayName)
		}
		if len(results.Results.Dietary) != 0 {
			t.Errorf("dietary tally should skip defaults: %v", results.Results.Dietary)
		}
		if results.Results.Music["Jazz"] != 1 {
			t.Errorf("music tally = %v", results.Results.Music)
		}
	})
}

func TestSubmitCombined(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		counters, err := svc.Submit(ctx, ev.ID, auth.NewGuest(), aggregate.Submission{
			RSVP:  &aggregate.RSVPInput{Status: "going"},
			Poll:  &aggregate.PollInput{DietaryChoice: "Vegan", MusicChoice: "House"},
			Email: "cy@example.com",
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}

		want := models.Counters{AttendeeCount: 1, RSVPCount: 1, PollCount: 1}
		if counters != want {
			t.Errorf("counters = %+v, want %+v", counters, want)
		}

		got, _ := svc.Get(ctx, ev.ID, host("h1"))
		if got.RSVPs["email:cy@example.com"].DisplayName != "cy@example.com" {
			t.Errorf("rsvp entry = %+v", got.RSVPs)
		}
		if got.PollResponses["email:cy@example.com"].MusicChoice != "House" {
			t.Errorf("poll entry = %+v", got.PollResponses)
		}
	})
}

func TestSubmitValidation(t *testing.T) {
	fs := &flakyStore{Store: store.NewMemoryStore()}
	svc := aggregate.NewService(fs, discard, "")

	tests := []struct {
		name string
		sub  aggregate.Submission
	}{
		{"empty submission", aggregate.Submission{}},
		{"missing status", aggregate.Submission{RSVP: &aggregate.RSVPInput{}}},
		{"invalid status", aggregate.Submission{RSVP: &aggregate.RSVPInput{Status: "perhaps"}}},
		{"invalid status with poll", aggregate.Submission{
			RSVP: &aggregate.RSVPInput{Status: "yes"},
			Poll: &aggregate.PollInput{DietaryChoice: "Vegan"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), "any", auth.NewGuest(), tt.sub)
			assertKind(t, err, aggregate.KindInvalidInput)
		})
	}

	if n := fs.calls.Load(); n != 0 {
		t.Errorf("invalid input reached the store %d times", n)
	}
}

func TestSubmitUnknownEvent(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		_, err := svc.SubmitRSVP(context.Background(), "missing", auth.NewGuest(), "going", "", "")
		assertKind(t, err, aggregate.KindNotFound)
	})
}

func TestSubmitRetriesConflicts(t *testing.T) {
	base := store.NewMemoryStore()
	fs := &flakyStore{Store: base, saveErr: store.ErrConflict, failures: 2}
	svc := aggregate.NewService(fs, discard, "")
	ev := createEvent(t, aggregate.NewService(base, discard, ""), "h1")

	counters, err := svc.SubmitRSVP(context.Background(), ev.ID, auth.NewGuest(), "going", "", "")
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if counters.AttendeeCount != 1 {
		t.Errorf("AttendeeCount = %d", counters.AttendeeCount)
	}
	if n := fs.calls.Load(); n != 3 {
		t.Errorf("SaveResponse called %d times, want 3", n)
	}
}

func TestSubmitGivesUpAfterConflicts(t *testing.T) {
	base := store.NewMemoryStore()
	fs := &flakyStore{Store: base, saveErr: fmt.Errorf("%w: busy", store.ErrConflict), failures: 10}
	svc := aggregate.NewService(fs, discard, "")
	ev := createEvent(t, aggregate.NewService(base, discard, ""), "h1")

	_, err := svc.SubmitRSVP(context.Background(), ev.ID, auth.NewGuest(), "going", "", "")
	assertKind(t, err, aggregate.KindStoreUnavailable)

	if n := fs.calls.Load(); n != 3 {
		t.Errorf("SaveResponse called %d times, want 3", n)
	}
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("cause should be kept in the chain: %v", err)
	}
	if msg := aggregate.MessageOf(err); msg != "storage temporarily unavailable" {
		t.Errorf("client message leaks detail: %q", msg)
	}
}

func TestSubmitDoesNotRetryStoreErrors(t *testing.T) {
	fs := &flakyStore{Store: store.NewMemoryStore(), saveErr: errors.New("disk on fire"), failures: 10}
	svc := aggregate.NewService(fs, discard, "")

	_, err := svc.SubmitRSVP(context.Background(), "e1", auth.NewGuest(), "going", "", "")
	assertKind(t, err, aggregate.KindStoreUnavailable)

	if n := fs.calls.Load(); n != 1 {
		t.Errorf("SaveResponse called %d times, want 1", n)
	}
}

func TestConcurrentSubmissions(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		const participants = 25
		var wg sync.WaitGroup
		var failures atomic.Int32

		for i := 0; i < participants; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				caller := host(fmt.Sprintf("p%d", i))
				_, err := svc.Submit(ctx, ev.ID, caller, aggregate.Submission{
					RSVP: &aggregate.RSVPInput{Status: "going"},
					Poll: &aggregate.PollInput{DietaryChoice: "Vegan"},
				})
				if err != nil {
					failures.Add(1)
					t.Errorf("participant %d: %v", i, err)
				}
			}(i)
		}
		wg.Wait()

		if failures.Load() != 0 {
			t.Fatalf("%d submissions failed", failures.Load())
		}

		got, err := svc.Get(ctx, ev.ID, host("h1"))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(got.RSVPs) != participants || len(got.PollResponses) != participants {
			t.Errorf("lost update: %d rsvps, %d polls, want %d", len(got.RSVPs), len(got.PollResponses), participants)
		}
		if got.AttendeeCount != participants {
			t.Errorf("AttendeeCount = %d, want %d", got.AttendeeCount, participants)
		}
	})
}

func TestHostOnlyOperations(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")
		before, _ := svc.Get(ctx, ev.ID, host("h1"))

		fields := models.EventFields{Title: "Hijacked", Date: "x", Time: "x", Location: "x"}

		for name, caller := range map[string]auth.Caller{"stranger": host("mallory"), "guest": auth.NewGuest()} {
			want := aggregate.KindForbidden
			if name == "guest" {
				want = aggregate.KindUnauthorized
			}

			t.Run(name, func(t *testing.T) {
				_, err := svc.ReplaceFields(ctx, ev.ID, caller, fields)
				assertKind(t, err, want)

				_, err = svc.SetMediaLink(ctx, ev.ID, caller, "evil.example")
				assertKind(t, err, want)

				_, err = svc.Get(ctx, ev.ID, caller)
				assertKind(t, err, want)

				_, err = svc.PollResults(ctx, ev.ID, caller)
				assertKind(t, err, want)

				_, err = svc.Attendees(ctx, ev.ID, caller)
				assertKind(t, err, want)
			})
		}

		after, _ := svc.Get(ctx, ev.ID, host("h1"))
		if after.Title != before.Title || after.SharedMediaLink != before.SharedMediaLink {
			t.Errorf("event changed by non-host: before %+v after %+v", before, after)
		}
	})
}

func TestReplaceFields(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		if _, err := svc.SubmitRSVP(ctx, ev.ID, auth.NewGuest(), "going", "", "a@example.com"); err != nil {
			t.Fatalf("SubmitRSVP: %v", err)
		}
		if _, err := svc.SetMediaLink(ctx, ev.ID, host("h1"), "drive.example/x"); err != nil {
			t.Fatalf("SetMediaLink: %v", err)
		}

		updated, err := svc.ReplaceFields(ctx, ev.ID, host("h1"), models.EventFields{
			Title:          "Braai v2",
			Date:           "2027-01-01",
			Time:           "19:00",
			Location:       "Pretoria",
			Description:    "Bring chairs",
			MusicOptions:   []string{"Amapiano"},
			DietaryOptions: nil,
		})
		if err != nil {
			t.Fatalf("ReplaceFields: %v", err)
		}

		if updated.Title != "Braai v2" || updated.Category != models.DefaultCategory {
			t.Errorf("fields not replaced: %+v", updated)
		}
		if len(updated.DietaryOptions) != 0 || len(updated.MusicOptions) != 1 {
			t.Errorf("options = %v / %v", updated.DietaryOptions, updated.MusicOptions)
		}
		if updated.AttendeeCount != 1 || len(updated.RSVPs) != 1 {
			t.Errorf("responses must survive a field update: %+v", updated)
		}
		if updated.SharedMediaLink != "https://drive.example/x" {
			t.Errorf("media link must survive a field update: %q", updated.SharedMediaLink)
		}

		_, err = svc.ReplaceFields(ctx, ev.ID, host("h1"), models.EventFields{Title: "No date"})
		assertKind(t, err, aggregate.KindInvalidInput)

		// Identity is checked before the fields are validated
		_, err = svc.ReplaceFields(ctx, ev.ID, auth.NewGuest(), models.EventFields{Title: ""})
		assertKind(t, err, aggregate.KindUnauthorized)

		_, err = svc.ReplaceFields(ctx, "missing", host("h1"), models.EventFields{Title: "T", Date: "D", Time: "T", Location: "L"})
		assertKind(t, err, aggregate.KindNotFound)
	})
}

func TestSetMediaLink(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		tests := []struct {
			in   string
			want string
		}{
			{"drive.google.com/x", "https://drive.google.com/x"},
			{"https://already.com", "https://already.com"},
			{"", ""},
		}

		for _, tt := range tests {
			link, err := svc.SetMediaLink(ctx, ev.ID, host("h1"), tt.in)
			if err != nil {
				t.Fatalf("SetMediaLink(%q): %v", tt.in, err)
			}
			if link != tt.want {
				t.Errorf("SetMediaLink(%q) = %q, want %q", tt.in, link, tt.want)
			}

			got, _ := svc.Get(ctx, ev.ID, host("h1"))
			if got.SharedMediaLink != tt.want {
				t.Errorf("stored link = %q, want %q", got.SharedMediaLink, tt.want)
			}
		}
	})
}

func TestPollResultsEndToEnd(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		for _, email := range []string{"p1@example.com", "p2@example.com"} {
			if _, err := svc.SubmitPoll(ctx, ev.ID, auth.NewGuest(), "Vegan", "", "", email); err != nil {
				t.Fatalf("SubmitPoll(%s): %v", email, err)
			}
		}

		results, err := svc.PollResults(ctx, ev.ID, host("h1"))
		if err != nil {
			t.Fatalf("PollResults: %v", err)
		}

		if results.TotalResponses != 2 {
			t.Errorf("TotalResponses = %d, want 2", results.TotalResponses)
		}
		if len(results.Results.Dietary) != 1 || results.Results.Dietary["Vegan"] != 2 {
			t.Errorf("dietary = %v, want map[Vegan:2]", results.Results.Dietary)
		}
		if len(results.Results.Music) != 0 {
			t.Errorf("music = %v, want empty", results.Results.Music)
		}
		if results.EventTitle != "Braai" || len(results.DietaryOptions) != 2 {
			t.Errorf("results header = %+v", results)
		}
		if len(results.Responses) != 2 {
			t.Errorf("raw responses = %v", results.Responses)
		}
	})
}

func TestShareView(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "https://toast.test")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		svc.SubmitRSVP(ctx, ev.ID, auth.NewGuest(), "going", "", "a@example.com")
		svc.SubmitRSVP(ctx, ev.ID, auth.NewGuest(), "maybe", "", "b@example.com")

		view, err := svc.ShareView(ctx, ev.ID)
		if err != nil {
			t.Fatalf("ShareView: %v", err)
		}

		if view.AttendeeCount != 1 || view.ResponseCount != 2 {
			t.Errorf("counts = %d/%d, want 1/2", view.AttendeeCount, view.ResponseCount)
		}
		if view.ShareURL != "https://toast.test/api/share/"+ev.ID {
			t.Errorf("ShareURL = %q", view.ShareURL)
		}

		_, err = svc.ShareView(ctx, "missing")
		assertKind(t, err, aggregate.KindNotFound)
	})
}

func TestAttendees(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		ev := createEvent(t, svc, "h1")

		svc.SubmitRSVP(ctx, ev.ID, auth.NewGuest(), "going", "Ann", "ann@example.com")
		svc.SubmitRSVP(ctx, ev.ID, auth.NewGuest(), "not_going", "", "")

		attendees, err := svc.Attendees(ctx, ev.ID, host("h1"))
		if err != nil {
			t.Fatalf("Attendees: %v", err)
		}

		if len(attendees) != 2 {
			t.Fatalf("expected 2 attendees, got %d", len(attendees))
		}
		names := map[string]string{}
		for _, a := range attendees {
			names[a.Name] = a.Status
		}
		if names["Ann"] != models.StatusGoing || names["Anonymous"] != models.StatusNotGoing {
			t.Errorf("attendees = %+v", attendees)
		}
		if attendees[1].RespondedAt.Before(attendees[0].RespondedAt) {
			t.Errorf("attendees not ordered by response time: %+v", attendees)
		}
	})
}

func TestListHostEvents(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		svc := aggregate.NewService(s, discard, "")
		ctx := context.Background()
		createEvent(t, svc, "h1")
		ev := createEvent(t, svc, "h1")
		createEvent(t, svc, "h2")

		svc.SubmitRSVP(ctx, ev.ID, auth.NewGuest(), "going", "", "a@example.com")

		events, err := svc.ListHostEvents(ctx, host("h1"))
		if err != nil {
			t.Fatalf("ListHostEvents: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}

		total := 0
		for _, e := range events {
			total += e.AttendeeCount
		}
		if total != 1 {
			t.Errorf("attendee counts = %+v", events)
		}

		_, err = svc.ListHostEvents(ctx, auth.NewGuest())
		assertKind(t, err, aggregate.KindUnauthorized)
	})
}
