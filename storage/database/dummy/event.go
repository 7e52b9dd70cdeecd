package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/steliasaustin/outreach/core/event"
)

type eventRepository struct {
	db *eventTable
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db.event}
}

func (repo *eventRepository) query() []event.Event {
	events := make([]event.Event, 0, len(repo.db.table))
	for _, ev := range repo.db.table {
		events = append(events, *ev)
	}
	return events
}

func (repo *eventRepository) CreateEvent(_ context.Context, ev event.Event) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	for i := range ev.Roles {
		if ev.Roles[i].ID == "" {
			ev.Roles[i].ID = uuid.NewString()
		}
		ev.Roles[i].EventID = ev.ID
	}
	repo.db.table[ev.ID] = &ev
	return ev, nil
}

func (repo *eventRepository) GetEventByID(_ context.Context, id string) (event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ev, ok := repo.db.table[id]; ok {
		return *ev, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) GetPublishedEventByID(_ context.Context, id string) (event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ev, ok := repo.db.table[id]; ok && ev.Status == event.StatusPublished {
		return *ev, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) QueryUpcomingPublished(_ context.Context, from time.Time) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := make([]event.Event, 0)
	for _, ev := range repo.query() {
		if ev.Status == event.StatusPublished && !ev.Start.Before(from) {
			events = append(events, ev)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

func (repo *eventRepository) QueryEventsByOrganizer(_ context.Context, organizerID string, externalOnly bool) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := make([]event.Event, 0)
	for _, ev := range repo.query() {
		if ev.OrganizerID != organizerID {
			continue
		}
		if externalOnly && !ev.IsExternal {
			continue
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.After(events[j].Start) })
	return events, nil
}

func (repo *eventRepository) QueryPendingProposals(_ context.Context) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := make([]event.Event, 0)
	for _, ev := range repo.query() {
		if ev.IsExternal && ev.Status == event.StatusDraft {
			events = append(events, ev)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })
	return events, nil
}

func (repo *eventRepository) QueryRolesByEvent(_ context.Context, eventID string) ([]event.Role, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ev, ok := repo.db.table[eventID]; ok {
		return ev.Roles, nil
	}
	return nil, nil
}

func (repo *eventRepository) UpdateEvent(_ context.Context, ev event.Event) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[ev.ID]; !ok {
		return event.Event{}, event.ErrNotFound
	}
	for i := range ev.Roles {
		if ev.Roles[i].ID == "" {
			ev.Roles[i].ID = uuid.NewString()
		}
		ev.Roles[i].EventID = ev.ID
	}
	repo.db.table[ev.ID] = &ev
	return ev, nil
}

func (repo *eventRepository) SetEventStatus(_ context.Context, id string, status event.Status) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ev, ok := repo.db.table[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	ev.Status = status
	ev.UpdatedAt = time.Now().UTC()
	return *ev, nil
}

func (repo *eventRepository) DeleteEvent(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return event.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *eventRepository) CountEventsByMinistry(_ context.Context, ministryID string) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, ev := range repo.db.table {
		if ev.MinistryID == ministryID {
			count++
		}
	}
	return count, nil
}
