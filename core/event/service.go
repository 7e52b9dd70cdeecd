package event

import (
	"context"
	"errors"
	"time"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/calendar"
)

var (
	// errors
	ErrNotFound = errors.New("event not found")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, ev Event) (Event, error)
		GetEventByID(ctx context.Context, id string) (Event, error)
		// GetPublishedEventByID only matches events in published status.
		GetPublishedEventByID(ctx context.Context, id string) (Event, error)
		// QueryUpcomingPublished returns published events starting at or after `from`,
		// ordered ascending by start date.
		QueryUpcomingPublished(ctx context.Context, from time.Time) ([]Event, error)
		QueryEventsByOrganizer(ctx context.Context, organizerID string, externalOnly bool) ([]Event, error)
		// QueryPendingProposals returns external events still in draft status.
		QueryPendingProposals(ctx context.Context) ([]Event, error)
		QueryRolesByEvent(ctx context.Context, eventID string) ([]Role, error)
		UpdateEvent(ctx context.Context, ev Event) (Event, error)
		SetEventStatus(ctx context.Context, id string, status Status) (Event, error)
		DeleteEvent(ctx context.Context, id string) error
		CountEventsByMinistry(ctx context.Context, ministryID string) (int, error)
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create registers a church-hosted event; it goes live immediately.
func (svc *Service) Create(ctx context.Context, organizerID string, ne NewEvent) (Event, error) {
	ev := svc.fromInput(ne)
	ev.OrganizerID = organizerID
	ev.Status = StatusPublished
	return svc.repo.CreateEvent(ctx, ev)
}

// Propose registers a community-organization event; it stays a draft until
// an admin or organizer approves it.
func (svc *Service) Propose(ctx context.Context, organizerID, organization string, ne NewEvent) (Event, error) {
	ev := svc.fromInput(ne)
	ev.OrganizerID = organizerID
	ev.IsExternal = true
	ev.ExternalOrganizer = organization
	ev.Status = StatusDraft
	return svc.repo.CreateEvent(ctx, ev)
}

func (svc *Service) Get(ctx context.Context, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, id)
}

func (svc *Service) GetPublished(ctx context.Context, id string) (Event, error) {
	return svc.repo.GetPublishedEventByID(ctx, id)
}

func (svc *Service) Upcoming(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryUpcomingPublished(ctx, time.Now().UTC())
}

func (svc *Service) Proposals(ctx context.Context, organizerID string) ([]Event, error) {
	return svc.repo.QueryEventsByOrganizer(ctx, organizerID, true /* externalOnly */)
}

// PendingProposals lists submitted external events awaiting review.
func (svc *Service) PendingProposals(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryPendingProposals(ctx)
}

func (svc *Service) Roles(ctx context.Context, eventID string) ([]Role, error) {
	return svc.repo.QueryRolesByEvent(ctx, eventID)
}

func (svc *Service) Update(ctx context.Context, id string, ne NewEvent) (Event, error) {
	orig, err := svc.repo.GetEventByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	ev := svc.fromInput(ne)
	ev.ID = orig.ID
	ev.OrganizerID = orig.OrganizerID
	ev.Status = orig.Status
	ev.CreatedAt = orig.CreatedAt
	ev.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEvent(ctx, ev)
}

// Approve publishes a pending proposal.
func (svc *Service) Approve(ctx context.Context, id string) (Event, error) {
	return svc.repo.SetEventStatus(ctx, id, StatusPublished)
}

// Decline cancels a pending proposal.
func (svc *Service) Decline(ctx context.Context, id string) (Event, error) {
	return svc.repo.SetEventStatus(ctx, id, StatusCancelled)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteEvent(ctx, id)
}

// Calendar returns the expanded occurrence feed for published upcoming
// events within the default horizon.
func (svc *Service) Calendar(ctx context.Context, now time.Time) ([]Occurrence, error) {
	events, err := svc.repo.QueryUpcomingPublished(ctx, now)
	if err != nil {
		return nil, err
	}

	base := make(map[string]Event, len(events))
	entries := make([]calendar.Event, 0, len(events))
	for _, ev := range events {
		base[ev.ID] = ev
		entries = append(entries, calendar.Event{
			ID:                ev.ID,
			Title:             ev.Title,
			Start:             ev.Start,
			IsRecurring:       ev.IsRecurring,
			RecurrencePattern: ev.RecurrencePattern,
		})
	}

	expanded := calendar.Expand(entries, now, calendar.DefaultHorizon(now))

	out := make([]Occurrence, 0, len(expanded))
	for _, entry := range expanded {
		ev := base[entry.ID]
		out = append(out, Occurrence{
			EventID:    entry.ID,
			Title:      entry.Title,
			Start:      entry.Start,
			IsExternal: ev.IsExternal,
			MinistryID: ev.MinistryID,
		})
	}
	return out, nil
}

func (svc *Service) fromInput(ne NewEvent) Event {
	now := time.Now().UTC()
	ev := Event{
		Title:             ne.Title,
		Description:       ne.Description,
		Start:             ne.Start,
		End:               ne.End,
		Location:          ne.Location,
		Address:           ne.Address,
		MaxVolunteers:     ne.MaxVolunteers,
		WhatToBring:       ne.WhatToBring,
		ImageURL:          ne.ImageURL,
		IsExternal:        ne.IsExternal,
		IsRecurring:       ne.IsRecurring,
		RecurrencePattern: ne.RecurrencePattern,
		ExternalOrganizer: ne.ExternalOrganizer,
		MinistryID:        ne.MinistryID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, nr := range ne.Roles {
		spots := nr.SpotsNeeded
		if spots < 1 {
			spots = 1
		}
		ev.Roles = append(ev.Roles, Role{Name: core.CleanString(nr.Name), SpotsNeeded: spots})
	}
	return ev
}
