package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/steliasaustin/outreach/core/user"
	"github.com/steliasaustin/outreach/core/volunteer"
)

func TestVolunteerHistory(t *testing.T) {
	organizer := createUser(t, "Deacon Paul", "hist-organizer@steliasaustin.org", user.RoleOrganizer)
	member := createUser(t, "Maria Garcia", "hist-member@example.com", user.RoleCommunity)

	ev := createPublishedEvent(t, "History Food Drive", time.Now().UTC().Add(72*time.Hour), nil)
	body := marchallObj(t, volunteer.SignUp{Name: "James Wilson", Email: "history@example.com"})
	req, rec := newRequest(http.MethodPost, "/v1/events/"+ev.ID+"/rsvp", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var rsvp volunteer.RSVP
	unmarchallObj(t, rec, &rsvp)

	path := "/v1/volunteers/" + rsvp.VolunteerID + "/history"

	t.Run("community refused", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, path, getToken(t, member))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("staff ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, path, getToken(t, organizer))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("history code = %v; body = %s", rec.Code, rec.Body.String())
		}
		var entries []volunteer.HistoryEntry
		unmarchallObj(t, rec, &entries)
		if len(entries) != 1 || entries[0].EventTitle != ev.Title {
			t.Errorf("history = %+v, want the single signup", entries)
		}
	})

	t.Run("unknown volunteer", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/volunteers/nope/history", getToken(t, organizer))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: volunteer.ErrNotFound.Error()}),
		}, rec)
	})
}
