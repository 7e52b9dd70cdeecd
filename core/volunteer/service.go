package volunteer

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/calendar"
	"github.com/steliasaustin/outreach/core/event"
)

var (
	// errors
	ErrNotFound        = errors.New("volunteer not found")
	ErrRSVPNotFound    = errors.New("sign-up not found")
	ErrEventPast       = errors.New("this event has already taken place")
	ErrEventFull       = errors.New("this event is full")
	ErrAlreadySignedUp = errors.New("you are already signed up for this event")
)

type (
	Repository interface {
		GetVolunteerByID(ctx context.Context, id string) (Volunteer, error)
		GetVolunteerByEmail(ctx context.Context, email string) (Volunteer, error)
		CreateVolunteer(ctx context.Context, vol Volunteer) (Volunteer, error)
		UpdateVolunteer(ctx context.Context, vol Volunteer) (Volunteer, error)

		GetRSVP(ctx context.Context, volunteerID, eventID string) (RSVP, error)
		// CreateRSVP re-checks event capacity and (volunteer, event) uniqueness
		// within the insert transaction; it returns ErrEventFull or
		// ErrAlreadySignedUp when the application-level pre-checks raced.
		CreateRSVP(ctx context.Context, rsvp RSVP) (RSVP, error)
		DeleteRSVP(ctx context.Context, id string) error
		CountConfirmedByEvent(ctx context.Context, eventID string) (int, error)
		QueryRSVPsByEvent(ctx context.Context, eventID string) ([]RSVP, error)
		QueryHistoryByVolunteer(ctx context.Context, volunteerID string) ([]HistoryEntry, error)
	}

	Service struct {
		repo     Repository
		events   event.Repository
		validate *validator.Validate
		mailSvc  core.EmailService
		conf     *core.Config
		logger   core.Logger
	}
)

func NewService(
	repo Repository,
	events event.Repository,
	validate *validator.Validate,
	mailSvc core.EmailService,
	conf *core.Config,
	logger core.Logger,
) *Service {
	return &Service{
		repo:     repo,
		events:   events,
		validate: validate,
		mailSvc:  mailSvc,
		conf:     conf,
		logger:   logger,
	}
}

// SignUp registers a volunteer for a published upcoming event. Checks run in
// order and short-circuit: input shape, event exists+published, event not
// past, capacity, then duplicate signup (after volunteer resolution). On
// success the confirmation email (with calendar invite attached) is
// dispatched without gating the result.
func (svc *Service) SignUp(ctx context.Context, eventID string, su SignUp) (RSVP, error) {
	if err := su.Validate(svc.validate); err != nil {
		return RSVP{}, err
	}

	ev, err := svc.events.GetPublishedEventByID(ctx, eventID)
	if err != nil {
		return RSVP{}, err
	}

	now := time.Now().UTC()
	if ev.IsPast(now) {
		return RSVP{}, ErrEventPast
	}

	if ev.MaxVolunteers != nil {
		count, err := svc.repo.CountConfirmedByEvent(ctx, ev.ID)
		if err != nil {
			return RSVP{}, errors.Wrap(err, "counting confirmed RSVPs")
		}
		if count >= *ev.MaxVolunteers {
			return RSVP{}, ErrEventFull
		}
	}

	vol, err := svc.resolveVolunteer(ctx, su)
	if err != nil {
		return RSVP{}, err
	}

	if _, err := svc.repo.GetRSVP(ctx, vol.ID, ev.ID); err == nil {
		return RSVP{}, ErrAlreadySignedUp
	} else if errors.Cause(err) != ErrRSVPNotFound {
		return RSVP{}, errors.Wrap(err, "checking existing RSVP")
	}

	rsvp, err := svc.repo.CreateRSVP(ctx, RSVP{
		VolunteerID: vol.ID,
		EventID:     ev.ID,
		RoleID:      su.RoleID,
		Note:        su.Note,
		Status:      StatusConfirmed,
		CreatedAt:   now,
	})
	if err != nil {
		return RSVP{}, err
	}
	rsvp.Volunteer = &vol
	rsvp.EventTitle = ev.Title

	svc.sendConfirmation(ev, vol)

	return rsvp, nil
}

// Cancel removes a volunteer's RSVP. No capacity or past-event check applies.
func (svc *Service) Cancel(ctx context.Context, eventID, email string) error {
	vol, err := svc.repo.GetVolunteerByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	rsvp, err := svc.repo.GetRSVP(ctx, vol.ID, eventID)
	if err != nil {
		return err
	}
	return svc.repo.DeleteRSVP(ctx, rsvp.ID)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Volunteer, error) {
	return svc.repo.GetVolunteerByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) EventRSVPs(ctx context.Context, eventID string) ([]RSVP, error) {
	return svc.repo.QueryRSVPsByEvent(ctx, eventID)
}

// ConfirmedCount returns the number of confirmed signups for an event, for
// showing remaining spots on the public detail page.
func (svc *Service) ConfirmedCount(ctx context.Context, eventID string) (int, error) {
	return svc.repo.CountConfirmedByEvent(ctx, eventID)
}

// History returns a volunteer's signups, most recent event first.
func (svc *Service) History(ctx context.Context, volunteerID string) ([]HistoryEntry, error) {
	if _, err := svc.repo.GetVolunteerByID(ctx, volunteerID); err != nil {
		return nil, err
	}
	return svc.repo.QueryHistoryByVolunteer(ctx, volunteerID)
}

// resolveVolunteer finds the volunteer by email or creates one; on a repeat
// signup the name is refreshed and the phone updated only when a new value
// was supplied (it never regresses to empty).
func (svc *Service) resolveVolunteer(ctx context.Context, su SignUp) (Volunteer, error) {
	now := time.Now().UTC()

	vol, err := svc.repo.GetVolunteerByEmail(ctx, su.Email)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return Volunteer{}, errors.Wrap(err, "finding volunteer by email")
		}
		return svc.repo.CreateVolunteer(ctx, Volunteer{
			Name:      su.Name,
			Email:     su.Email,
			Phone:     su.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	vol.Name = su.Name
	if su.Phone != "" {
		vol.Phone = su.Phone
	}
	vol.UpdatedAt = now
	return svc.repo.UpdateVolunteer(ctx, vol)
}

type confirmationData struct {
	VolunteerName string
	EventTitle    string
	Description   string
	DateStr       string
	TimeRange     string
	Location      string
	Address       string
	WhatToBring   []string
}

// sendConfirmation assembles the calendar invite and confirmation email and
// hands them to the email service. Delivery is best-effort: the email
// service logs failures and nothing here blocks or fails the signup.
func (svc *Service) sendConfirmation(ev event.Event, vol Volunteer) {
	ics := calendar.ICS(calendar.Invite{
		Title:       ev.Title,
		Description: ev.Description,
		Start:       ev.Start,
		End:         ev.End,
		Location:    ev.Location,
		Address:     ev.Address,
	})

	timeRange := ev.Start.Format("3:04 PM")
	if ev.End != nil {
		timeRange += " - " + ev.End.Format("3:04 PM")
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: vol.Name, Address: vol.Email}},
		Subject:      "You're signed up: " + ev.Title,
		TemplateName: "rsvp_confirmation",
		TemplateData: confirmationData{
			VolunteerName: vol.Name,
			EventTitle:    ev.Title,
			Description:   ev.Description,
			DateStr:       ev.Start.Format("Monday, January 2, 2006"),
			TimeRange:     timeRange,
			Location:      ev.Location,
			Address:       ev.Address,
			WhatToBring:   ev.WhatToBring,
		},
	}
	if err := msg.Attach(strings.NewReader(ics), "event.ics", "text/calendar"); err != nil {
		svc.logger.Error("attaching calendar invite", err)
	}

	svc.mailSvc.SendMessages(msg)
}
