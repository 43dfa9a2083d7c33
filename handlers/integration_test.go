// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/ST10291541/ToastAPI/models"
	"github.com/ST10291541/ToastAPI/testutil"
)

// TestFullEventWorkflow tests the complete end-to-end workflow:
// 1. Host creates event
// 2. Guest opens share view
// 3. Two guests answer the poll, one RSVPs
// 4. Host sets the media link
// 5. Host reads results and attendees
func TestFullEventWorkflow(t *testing.T) {
	svc, _ := setupService(t)
	eventHandler := NewEventHandler(svc)
	responseHandler := NewResponseHandler(svc)
	resultsHandler := NewResultsHandler(svc)
	hostAuth := testutil.AuthHeader(t, "host-1")

	// Step 1: Create the event
	createReq := models.CreateEventRequest{
		Title:          "Graduation Party",
		Date:           "2026-11-28",
		Time:           "19:00",
		Location:       "Rondebosch",
		DietaryOptions: []string{"Vegan", "None"},
		MusicOptions:   []string{"Amapiano", "Rock"},
	}
	w := serve(eventHandler.CreateEvent, testutil.MakeRequest("POST", "/api/events", createReq, hostAuth))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create event failed: %d - %s", w.Code, w.Body.String())
	}

	var created models.CreateEventResponse
	testutil.AssertJSON(t, w, &created)
	eventID := created.EventID
	t.Logf("Step 1 - Created event: %s", eventID)

	// Step 2: Share view
	w = serve(eventHandler.ShareEvent, withID(testutil.MakeRequest("GET", "/api/share/"+eventID, nil, nil), eventID))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Share view failed: %d - %s", w.Code, w.Body.String())
	}

	var view models.ShareView
	testutil.AssertJSON(t, w, &view)
	if view.AttendeeCount != 0 || len(view.MusicOptions) != 2 {
		t.Errorf("Step 2 - Unexpected share view: %+v", view)
	}

	// Step 3: Responses
	for _, email := range []string{"p1@example.com", "p2@example.com"} {
		body := models.SubmitPollRequest{DietaryChoice: "Vegan", UserEmail: email}
		w = serve(responseHandler.SubmitPoll, withID(testutil.MakeRequest("POST", "/api/events/"+eventID+"/poll", body, nil), eventID))
		if w.Code != http.StatusOK {
			t.Fatalf("Step 3 - Poll for %s failed: %d - %s", email, w.Code, w.Body.String())
		}
	}

	rsvp := models.SubmitRSVPRequest{Status: "going", UserName: "P One", UserEmail: "p1@example.com"}
	w = serve(responseHandler.SubmitRSVP, withID(testutil.MakeRequest("POST", "/api/events/"+eventID+"/rsvp", rsvp, nil), eventID))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - RSVP failed: %d - %s", w.Code, w.Body.String())
	}

	var counters models.SubmitResponse
	testutil.AssertJSON(t, w, &counters)
	if counters.AttendeeCount != 1 || counters.PollCount != 2 {
		t.Errorf("Step 3 - Unexpected counters: %+v", counters.Counters)
	}

	// Step 4: Media link
	linkReq := models.SetMediaLinkRequest{SharedMediaLink: "drive.google.com/x"}
	w = serve(eventHandler.SetMediaLink, withID(testutil.MakeRequest("PUT", "/api/events/"+eventID+"/media-link", linkReq, hostAuth), eventID))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Set media link failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 5: Results
	w = serve(resultsHandler.GetResults, withID(testutil.MakeRequest("GET", "/api/events/"+eventID+"/results", nil, hostAuth), eventID))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Results failed: %d - %s", w.Code, w.Body.String())
	}

	var results models.PollResults
	testutil.AssertJSON(t, w, &results)

	if results.TotalResponses != 2 {
		t.Errorf("Step 5 - Expected total_responses 2, got %d", results.TotalResponses)
	}
	if len(results.Results.Dietary) != 1 || results.Results.Dietary["Vegan"] != 2 {
		t.Errorf("Step 5 - Expected dietary {Vegan:2}, got %v", results.Results.Dietary)
	}
	if results.SharedMediaLink != "https://drive.google.com/x" {
		t.Errorf("Step 5 - Unexpected media link %q", results.SharedMediaLink)
	}
	if results.EventTitle != "Graduation Party" {
		t.Errorf("Step 5 - Unexpected title %q", results.EventTitle)
	}

	w = serve(resultsHandler.GetAttendees, withID(testutil.MakeRequest("GET", "/api/events/"+eventID+"/attendees", nil, hostAuth), eventID))
	var attendees models.AttendeesResponse
	testutil.AssertJSON(t, w, &attendees)
	if len(attendees.Attendees) != 1 || attendees.Attendees[0].Name != "P One" {
		t.Errorf("Step 5 - Unexpected attendees: %+v", attendees.Attendees)
	}

	t.Log("Full event workflow completed successfully")
}
