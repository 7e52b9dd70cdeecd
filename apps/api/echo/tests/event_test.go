package tests

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/user"
	"github.com/steliasaustin/outreach/core/volunteer"
)

func TestEventRetrieve(t *testing.T) {
	ev := createPublishedEvent(t, "Retrieve Garden Cleanup", time.Now().UTC().Add(72*time.Hour), nil)

	body := marchallObj(t, volunteer.SignUp{Name: "James Wilson", Email: "retrieve@example.com"})
	req, rec := newRequest(http.MethodPost, "/v1/events/"+ev.ID+"/rsvp", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup code = %v; body = %s", rec.Code, rec.Body.String())
	}

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/events/"+ev.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("retrieve code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var got struct {
			event.Event
			RSVPCount int `json:"rsvpCount"`
		}
		unmarchallObj(t, rec, &got)
		if got.ID != ev.ID || got.Title != ev.Title {
			t.Errorf("retrieve returned %+v, want %+v", got, ev)
		}
		if got.RSVPCount != 1 {
			t.Errorf("retrieve rsvpCount = %v, want 1", got.RSVPCount)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/events/nope")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: event.ErrNotFound.Error()}),
		}, rec)
	})
}

func TestEventSignUp(t *testing.T) {
	two := 2
	ev := createPublishedEvent(t, "Signup Food Drive", time.Now().UTC().Add(72*time.Hour), &two)
	path := "/v1/events/" + ev.ID + "/rsvp"

	t.Run("ok", func(t *testing.T) {
		body := marchallObj(t, volunteer.SignUp{Name: "Maria Garcia", Email: "signup@example.com", Phone: "512-555-0100"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("signup code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var rsvp volunteer.RSVP
		unmarchallObj(t, rec, &rsvp)
		if rsvp.EventID != ev.ID || rsvp.Status != volunteer.StatusConfirmed {
			t.Errorf("signup returned %+v", rsvp)
		}
	})

	// the event still has a free spot here, so the duplicate check is what
	// rejects the repeat signup rather than the capacity check
	t.Run("duplicate", func(t *testing.T) {
		body := marchallObj(t, volunteer.SignUp{Name: "Maria Garcia", Email: "signup@example.com"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: volunteer.ErrAlreadySignedUp.Error()}),
		}, rec)
	})

	t.Run("full", func(t *testing.T) {
		body := marchallObj(t, volunteer.SignUp{Name: "James Wilson", Email: "signup2@example.com"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("second signup code = %v; body = %s", rec.Code, rec.Body.String())
		}

		body = marchallObj(t, volunteer.SignUp{Name: "Sarah Chen", Email: "signup3@example.com"})
		req, rec = newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: volunteer.ErrEventFull.Error()}),
		}, rec)
	})

	t.Run("invalid input", func(t *testing.T) {
		body := marchallObj(t, volunteer.SignUp{Name: "M", Email: "nope"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("signup code = %v, want %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		body := marchallObj(t, volunteer.SignUp{Name: "Maria Garcia", Email: "signup@example.com"})
		req, rec := newRequest(http.MethodPost, "/v1/events/nope/rsvp", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: event.ErrNotFound.Error()}),
		}, rec)
	})
}

func TestEventCancelSignUp(t *testing.T) {
	ev := createPublishedEvent(t, "Cancel Coat Drive", time.Now().UTC().Add(72*time.Hour), nil)
	path := "/v1/events/" + ev.ID + "/rsvp"

	body := marchallObj(t, volunteer.SignUp{Name: "Sarah Chen", Email: "cancel@example.com"})
	req, rec := newRequest(http.MethodPost, path, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup code = %v; body = %s", rec.Code, rec.Body.String())
	}

	t.Run("email required", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, path)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email is required"}),
		}, rec)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, path+"?email="+url.QueryEscape("Cancel@Example.com"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("cancel code = %v; body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, path+"?email=cancel@example.com")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: volunteer.ErrRSVPNotFound.Error()}),
		}, rec)
	})
}

func TestEventCreatePermissions(t *testing.T) {
	organizer := createUser(t, "Deacon Paul", "evt-organizer@steliasaustin.org", user.RoleOrganizer)
	member := createUser(t, "Maria Garcia", "evt-member@example.com", user.RoleCommunity)

	body := marchallObj(t, event.NewEvent{
		Title:       "Parish Picnic Setup",
		Description: "Help set up tables and chairs before the picnic.",
		Start:       time.Now().UTC().Add(10 * 24 * time.Hour),
		Location:    "Church Lawn",
	})

	tests := []httpTest{
		{name: "anonymous", body: body, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "community", body: body, token: getToken(t, member), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "organizer", body: body, token: getToken(t, organizer), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/events", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusCreated {
				var ev event.Event
				unmarchallObj(t, rec, &ev)
				if ev.Status != event.StatusPublished {
					t.Errorf("created event status = %v, want %v", ev.Status, event.StatusPublished)
				}
				if ev.OrganizerID != organizer.ID {
					t.Errorf("created event organizer = %v, want %v", ev.OrganizerID, organizer.ID)
				}
			}
		})
	}
}

func TestEventCalendar(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/v1/events/calendar")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("calendar code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var occs []event.Occurrence
	unmarchallObj(t, rec, &occs)
	for i := 1; i < len(occs); i++ {
		if occs[i].Start.Before(occs[i-1].Start) {
			t.Errorf("calendar feed not sorted at %d: %v after %v", i, occs[i].Start, occs[i-1].Start)
		}
	}
}

func TestProposalFlow(t *testing.T) {
	organizer := createUser(t, "Deacon Paul", "prop-organizer@steliasaustin.org", user.RoleOrganizer)
	member := createUser(t, "Maria Garcia", "prop-member@example.com", user.RoleCommunity)
	memberToken := getToken(t, member)

	body := map[string]interface{}{
		"title":        "Neighborhood Supply Swap",
		"description":  "Trade household goods with neighbors in the parking lot.",
		"date":         time.Now().UTC().Add(21 * 24 * time.Hour),
		"location":     "Parking Lot",
		"organization": "Austin Mutual Aid",
	}

	t.Run("anonymous refused", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/proposals", marchallObj(t, body))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("organization required", func(t *testing.T) {
		withoutOrg := map[string]interface{}{}
		for k, v := range body {
			withoutOrg[k] = v
		}
		delete(withoutOrg, "organization")

		req, rec := newAuthRequest(http.MethodPost, "/v1/proposals", memberToken, marchallObj(t, withoutOrg))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"organization": "organization is required"}),
		}, rec)
	})

	var prop event.Event
	t.Run("submit", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/proposals", memberToken, marchallObj(t, body))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("submit code = %v; body = %s", rec.Code, rec.Body.String())
		}
		unmarchallObj(t, rec, &prop)
		if prop.Status != event.StatusDraft || !prop.IsExternal {
			t.Errorf("submitted proposal = %+v, want external draft", prop)
		}
		if prop.ExternalOrganizer != "Austin Mutual Aid" {
			t.Errorf("submitted proposal organizer = %q", prop.ExternalOrganizer)
		}
	})

	t.Run("member sees own submissions", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/proposals", memberToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("query code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var events []event.Event
		unmarchallObj(t, rec, &events)
		if len(events) != 1 || events[0].ID != prop.ID {
			t.Errorf("member proposals = %+v, want own submission only", events)
		}
	})

	t.Run("member cannot approve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/proposals/"+prop.ID+"/approve", memberToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("retrieve own", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/proposals/"+prop.ID, memberToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("retrieve code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var got event.Event
		unmarchallObj(t, rec, &got)
		if got.ID != prop.ID {
			t.Errorf("retrieve returned %+v, want %+v", got, prop)
		}
	})

	t.Run("others cannot retrieve", func(t *testing.T) {
		other := createUser(t, "Sarah Chen", "prop-other@example.com", user.RoleCommunity)
		req, rec := newAuthRequest(http.MethodGet, "/v1/proposals/"+prop.ID, getToken(t, other))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("staff retrieves any", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/proposals/"+prop.ID, getToken(t, organizer))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("staff retrieve code = %v; body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("regular events are not proposals", func(t *testing.T) {
		ev := createPublishedEvent(t, "Internal Bake Sale", time.Now().UTC().Add(48*time.Hour), nil)
		req, rec := newAuthRequest(http.MethodGet, "/v1/proposals/"+ev.ID, memberToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: event.ErrNotFound.Error()}),
		}, rec)
	})

	t.Run("staff approves", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/proposals/"+prop.ID+"/approve", getToken(t, organizer))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("approve code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var ev event.Event
		unmarchallObj(t, rec, &ev)
		if ev.Status != event.StatusPublished {
			t.Errorf("approved status = %v, want %v", ev.Status, event.StatusPublished)
		}

		// now visible on the public feed
		req, rec = newRequest(http.MethodGet, "/v1/events/"+prop.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("approved event not public: code = %v", rec.Code)
		}
	})

	t.Run("owner cannot delete once approved", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/proposals/"+prop.ID, memberToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("owner deletes own draft", func(t *testing.T) {
		draft := submitProposal(t, memberToken, "Winter Blanket Collection")

		other := createUser(t, "James Wilson", "prop-deleter@example.com", user.RoleCommunity)
		req, rec := newAuthRequest(http.MethodDelete, "/v1/proposals/"+draft.ID, getToken(t, other))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)

		req, rec = newAuthRequest(http.MethodDelete, "/v1/proposals/"+draft.ID, memberToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete code = %v; body = %s", rec.Code, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/proposals/"+draft.ID, memberToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: event.ErrNotFound.Error()}),
		}, rec)
	})

	t.Run("staff deletes any", func(t *testing.T) {
		draft := submitProposal(t, memberToken, "Spring Park Cleanup")

		req, rec := newAuthRequest(http.MethodDelete, "/v1/proposals/"+draft.ID, getToken(t, organizer))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("staff delete code = %v; body = %s", rec.Code, rec.Body.String())
		}
	})
}

// submitProposal submits a draft proposal through the API as the token's user.
func submitProposal(t *testing.T, token, title string) event.Event {
	t.Helper()

	body := marchallObj(t, map[string]interface{}{
		"title":        title,
		"description":  "Gather donations and supplies with neighborhood volunteers.",
		"date":         time.Now().UTC().Add(14 * 24 * time.Hour),
		"location":     "Fellowship Hall",
		"organization": "Austin Mutual Aid",
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/proposals", token, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var ev event.Event
	unmarchallObj(t, rec, &ev)
	return ev
}
