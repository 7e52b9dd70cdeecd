package volunteer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/volunteer"
	emailsvc "github.com/steliasaustin/outreach/services/email"
	logsvc "github.com/steliasaustin/outreach/services/logger"
	dummydb "github.com/steliasaustin/outreach/storage/database/dummy"
)

var ctx = context.Background()

func setup(t *testing.T) (*volunteer.Service, volunteer.Repository, event.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	conf := &core.Config{
		AppName:         "Outreach",
		TestMode:        true,
		WorkDir:         core.Getwd(),
		FrontendBaseURL: "http://localhost:3000",
		DefaultFromName: "St. Elias Outreach",
		DefaultFromAddr: "noreply@steliasaustin.org",
	}
	logger := logsvc.NewNopLogger()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	validate, _ := core.NewValidator()

	volRepo := dummydb.NewVolunteerRepository(db)
	evtRepo := dummydb.NewEventRepository(db)
	svc := volunteer.NewService(volRepo, evtRepo, validate, mailSvc, conf, logger)
	return svc, volRepo, evtRepo
}

func createEvent(t *testing.T, repo event.Repository, title string, start time.Time, status event.Status, maxVolunteers *int) event.Event {
	t.Helper()

	now := time.Now().UTC()
	ev, err := repo.CreateEvent(ctx, event.Event{
		Title:         title,
		Description:   "Lend a hand with " + title + ".",
		Start:         start,
		Location:      "Parish Hall",
		Status:        status,
		MaxVolunteers: maxVolunteers,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("createEvent(): %v", err)
	}
	return ev
}

func signUp(name, email string) volunteer.SignUp {
	return volunteer.SignUp{Name: name, Email: email}
}

func TestServiceSignUp(t *testing.T) {
	svc, _, evtRepo := setup(t)

	future := time.Now().UTC().Add(7 * 24 * time.Hour)
	published := createEvent(t, evtRepo, "Community Garden Cleanup", future, event.StatusPublished, nil)
	draft := createEvent(t, evtRepo, "Unapproved Coat Drive", future, event.StatusDraft, nil)
	past := createEvent(t, evtRepo, "Last Month's Food Drive", time.Now().UTC().Add(-24*time.Hour), event.StatusPublished, nil)

	tests := []struct {
		name    string
		eventID string
		signUp  volunteer.SignUp
		wantErr error
	}{
		{"unknown event", "nope", signUp("Maria Garcia", "maria@example.com"), event.ErrNotFound},
		{"unpublished event", draft.ID, signUp("Maria Garcia", "maria@example.com"), event.ErrNotFound},
		{"past event", past.ID, signUp("Maria Garcia", "maria@example.com"), volunteer.ErrEventPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SignUp(ctx, tt.eventID, tt.signUp); err != tt.wantErr {
				t.Errorf("SignUp() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("invalid input", func(t *testing.T) {
		_, err := svc.SignUp(ctx, published.ID, signUp("M", "not-an-email"))
		if _, ok := err.(validator.ValidationErrors); !ok {
			t.Errorf("SignUp() error = %v, want validation errors", err)
		}
	})

	t.Run("success sends confirmation", func(t *testing.T) {
		sentBefore := len(emailsvc.SentMessages)

		rsvp, err := svc.SignUp(ctx, published.ID, volunteer.SignUp{
			Name:  "  Maria Garcia ",
			Email: "Maria@Example.com",
			Phone: "512-555-0100",
		})
		if err != nil {
			t.Fatalf("SignUp(): %v", err)
		}
		if rsvp.ID == "" {
			t.Error("SignUp() returned RSVP without ID")
		}
		if rsvp.Status != volunteer.StatusConfirmed {
			t.Errorf("SignUp() status = %v, want %v", rsvp.Status, volunteer.StatusConfirmed)
		}
		if rsvp.Volunteer == nil || rsvp.Volunteer.Email != "maria@example.com" {
			t.Errorf("SignUp() volunteer email not cleaned: %+v", rsvp.Volunteer)
		}
		if rsvp.EventTitle != published.Title {
			t.Errorf("SignUp() event title = %q, want %q", rsvp.EventTitle, published.Title)
		}

		if len(emailsvc.SentMessages) != sentBefore+1 {
			t.Fatalf("confirmation email not sent")
		}
		msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
		if !strings.Contains(msg.Subject, published.Title) {
			t.Errorf("confirmation subject = %q, want it to mention the event", msg.Subject)
		}
		if len(msg.Attachments) != 1 || msg.Attachments[0].Filename != "event.ics" {
			t.Errorf("confirmation missing calendar invite: %+v", msg.Attachments)
		}
	})

	t.Run("duplicate signup", func(t *testing.T) {
		if _, err := svc.SignUp(ctx, published.ID, signUp("Maria Garcia", "maria@example.com")); err != volunteer.ErrAlreadySignedUp {
			t.Errorf("SignUp() error = %v, wantErr %v", err, volunteer.ErrAlreadySignedUp)
		}
		rsvps, err := svc.EventRSVPs(ctx, published.ID)
		if err != nil {
			t.Fatalf("EventRSVPs(): %v", err)
		}
		if len(rsvps) != 1 {
			t.Errorf("duplicate signup left %d RSVPs, want 1", len(rsvps))
		}
	})
}

func TestServiceSignUpCapacity(t *testing.T) {
	svc, _, evtRepo := setup(t)

	two := 2
	future := time.Now().UTC().Add(48 * time.Hour)
	ev := createEvent(t, evtRepo, "Youth Tutoring", future, event.StatusPublished, &two)

	if _, err := svc.SignUp(ctx, ev.ID, signUp("Maria Garcia", "maria@example.com")); err != nil {
		t.Fatalf("SignUp() 1: %v", err)
	}
	if _, err := svc.SignUp(ctx, ev.ID, signUp("James Wilson", "james@example.com")); err != nil {
		t.Fatalf("SignUp() 2: %v", err)
	}
	if _, err := svc.SignUp(ctx, ev.ID, signUp("Sarah Chen", "sarah@example.com")); err != volunteer.ErrEventFull {
		t.Errorf("SignUp() 3 error = %v, wantErr %v", err, volunteer.ErrEventFull)
	}

	rsvps, err := svc.EventRSVPs(ctx, ev.ID)
	if err != nil {
		t.Fatalf("EventRSVPs(): %v", err)
	}
	if len(rsvps) != 2 {
		t.Errorf("full event has %d RSVPs, want 2", len(rsvps))
	}
}

func TestServiceSignUpReusesVolunteer(t *testing.T) {
	svc, _, evtRepo := setup(t)

	future := time.Now().UTC().Add(48 * time.Hour)
	first := createEvent(t, evtRepo, "Food Drive", future, event.StatusPublished, nil)
	second := createEvent(t, evtRepo, "Coat Drive", future.Add(24*time.Hour), event.StatusPublished, nil)

	r1, err := svc.SignUp(ctx, first.ID, volunteer.SignUp{Name: "Maria Garcia", Email: "maria@example.com", Phone: "512-555-0100"})
	if err != nil {
		t.Fatalf("SignUp() 1: %v", err)
	}
	// second signup without a phone must not erase the stored one
	r2, err := svc.SignUp(ctx, second.ID, volunteer.SignUp{Name: "Maria G. Garcia", Email: "maria@example.com"})
	if err != nil {
		t.Fatalf("SignUp() 2: %v", err)
	}

	if r1.VolunteerID != r2.VolunteerID {
		t.Errorf("volunteer re-created: %v != %v", r1.VolunteerID, r2.VolunteerID)
	}
	vol, err := svc.GetByEmail(ctx, "maria@example.com")
	if err != nil {
		t.Fatalf("GetByEmail(): %v", err)
	}
	if vol.Phone != "512-555-0100" {
		t.Errorf("phone regressed to %q", vol.Phone)
	}
	if vol.Name != "Maria G. Garcia" {
		t.Errorf("name not refreshed: %q", vol.Name)
	}
}

func TestServiceCancel(t *testing.T) {
	svc, _, evtRepo := setup(t)

	future := time.Now().UTC().Add(48 * time.Hour)
	ev := createEvent(t, evtRepo, "Community Garden Cleanup", future, event.StatusPublished, nil)

	if _, err := svc.SignUp(ctx, ev.ID, signUp("Maria Garcia", "maria@example.com")); err != nil {
		t.Fatalf("SignUp(): %v", err)
	}

	tests := []struct {
		name    string
		eventID string
		email   string
		wantErr error
	}{
		{"unknown volunteer", ev.ID, "nobody@example.com", volunteer.ErrNotFound},
		{"no signup for event", "other-event", "maria@example.com", volunteer.ErrRSVPNotFound},
		{"ok", ev.ID, "Maria@Example.com", nil},
		{"already cancelled", ev.ID, "maria@example.com", volunteer.ErrRSVPNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Cancel(ctx, tt.eventID, tt.email); err != tt.wantErr {
				t.Errorf("Cancel() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	rsvps, err := svc.EventRSVPs(ctx, ev.ID)
	if err != nil {
		t.Fatalf("EventRSVPs(): %v", err)
	}
	if len(rsvps) != 0 {
		t.Errorf("cancelled signup still present: %d RSVPs", len(rsvps))
	}
}

func TestServiceHistory(t *testing.T) {
	svc, _, evtRepo := setup(t)

	now := time.Now().UTC()
	near := createEvent(t, evtRepo, "Food Drive", now.Add(24*time.Hour), event.StatusPublished, nil)
	far := createEvent(t, evtRepo, "Youth Tutoring", now.Add(14*24*time.Hour), event.StatusPublished, nil)

	r, err := svc.SignUp(ctx, near.ID, signUp("Maria Garcia", "maria@example.com"))
	if err != nil {
		t.Fatalf("SignUp() 1: %v", err)
	}
	if _, err = svc.SignUp(ctx, far.ID, signUp("Maria Garcia", "maria@example.com")); err != nil {
		t.Fatalf("SignUp() 2: %v", err)
	}

	if _, err := svc.History(ctx, "nope"); err != volunteer.ErrNotFound {
		t.Errorf("History() error = %v, wantErr %v", err, volunteer.ErrNotFound)
	}

	entries, err := svc.History(ctx, r.VolunteerID)
	if err != nil {
		t.Fatalf("History(): %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("History() returned %d entries, want 2", len(entries))
	}
	// most recent event first
	if entries[0].EventTitle != far.Title || entries[1].EventTitle != near.Title {
		t.Errorf("History() order = [%s %s], want [%s %s]",
			entries[0].EventTitle, entries[1].EventTitle, far.Title, near.Title)
	}
}

// failingEmailService refuses every delivery the way a live backend with bad
// credentials would: the failure is logged and never reaches the caller.
type failingEmailService struct {
	logger   core.Logger
	attempts int
}

func (svc *failingEmailService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		svc.attempts++
		svc.logger.Error("sending email", errors.New("smtp: connection refused"), msg.Subject)
	}
}

func TestServiceSignUpSurvivesEmailFailure(t *testing.T) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	conf := &core.Config{
		AppName:         "Outreach",
		TestMode:        true,
		WorkDir:         core.Getwd(),
		FrontendBaseURL: "http://localhost:3000",
		DefaultFromName: "St. Elias Outreach",
		DefaultFromAddr: "noreply@steliasaustin.org",
	}
	logger := logsvc.NewNopLogger()
	validate, _ := core.NewValidator()
	volRepo := dummydb.NewVolunteerRepository(db)
	evtRepo := dummydb.NewEventRepository(db)
	sender := &failingEmailService{logger: logger}
	svc := volunteer.NewService(volRepo, evtRepo, validate, sender, conf, logger)

	ev := createEvent(t, evtRepo, "Rainy Day Food Sort", time.Now().UTC().Add(48*time.Hour), event.StatusPublished, nil)

	rsvp, err := svc.SignUp(ctx, ev.ID, signUp("Maria Garcia", "rainyday@example.com"))
	if err != nil {
		t.Fatalf("SignUp() error = %v, want nil despite failed confirmation email", err)
	}
	if rsvp.ID == "" || rsvp.Status != volunteer.StatusConfirmed {
		t.Errorf("SignUp() returned %+v, want confirmed RSVP", rsvp)
	}
	if sender.attempts != 1 {
		t.Errorf("confirmation attempts = %d, want 1", sender.attempts)
	}

	// the row is persisted regardless of the delivery failure
	vol, err := volRepo.GetVolunteerByEmail(ctx, "rainyday@example.com")
	if err != nil {
		t.Fatalf("GetVolunteerByEmail(): %v", err)
	}
	got, err := volRepo.GetRSVP(ctx, vol.ID, ev.ID)
	if err != nil {
		t.Fatalf("GetRSVP(): %v", err)
	}
	if got.ID != rsvp.ID {
		t.Errorf("persisted RSVP = %v, want %v", got.ID, rsvp.ID)
	}
}
