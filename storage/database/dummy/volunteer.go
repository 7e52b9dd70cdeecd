package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/volunteer"
)

type volunteerRepository struct {
	db     *volunteerTable
	events *eventTable
}

var _ volunteer.Repository = (*volunteerRepository)(nil) // interface compliance check

func NewVolunteerRepository(db *DB) volunteer.Repository {
	return &volunteerRepository{db: db.volunteer, events: db.event}
}

func (repo *volunteerRepository) GetVolunteerByID(_ context.Context, id string) (volunteer.Volunteer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if vol, ok := repo.db.volunteers[id]; ok {
		return *vol, nil
	}
	return volunteer.Volunteer{}, volunteer.ErrNotFound
}

func (repo *volunteerRepository) GetVolunteerByEmail(_ context.Context, email string) (volunteer.Volunteer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, vol := range repo.db.volunteers {
		if vol.Email == email {
			return *vol, nil
		}
	}
	return volunteer.Volunteer{}, volunteer.ErrNotFound
}

func (repo *volunteerRepository) CreateVolunteer(_ context.Context, vol volunteer.Volunteer) (volunteer.Volunteer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if vol.ID == "" {
		vol.ID = uuid.NewString()
	}
	repo.db.volunteers[vol.ID] = &vol
	return vol, nil
}

func (repo *volunteerRepository) UpdateVolunteer(_ context.Context, vol volunteer.Volunteer) (volunteer.Volunteer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.volunteers[vol.ID]; !ok {
		return volunteer.Volunteer{}, volunteer.ErrNotFound
	}
	repo.db.volunteers[vol.ID] = &vol
	return vol, nil
}

func (repo *volunteerRepository) GetRSVP(_ context.Context, volunteerID, eventID string) (volunteer.RSVP, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rsvp := range repo.db.rsvps {
		if rsvp.VolunteerID == volunteerID && rsvp.EventID == eventID {
			return *rsvp, nil
		}
	}
	return volunteer.RSVP{}, volunteer.ErrRSVPNotFound
}

func (repo *volunteerRepository) CreateRSVP(_ context.Context, rsvp volunteer.RSVP) (volunteer.RSVP, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.rsvps {
		if existing.VolunteerID == rsvp.VolunteerID && existing.EventID == rsvp.EventID {
			return volunteer.RSVP{}, volunteer.ErrAlreadySignedUp
		}
	}

	repo.events.RLock()
	ev, ok := repo.events.table[rsvp.EventID]
	repo.events.RUnlock()
	if !ok {
		return volunteer.RSVP{}, event.ErrNotFound
	}
	if ev.MaxVolunteers != nil {
		var count int
		for _, existing := range repo.db.rsvps {
			if existing.EventID == rsvp.EventID && existing.Status == volunteer.StatusConfirmed {
				count++
			}
		}
		if count >= *ev.MaxVolunteers {
			return volunteer.RSVP{}, volunteer.ErrEventFull
		}
	}

	if rsvp.ID == "" {
		rsvp.ID = uuid.NewString()
	}
	repo.db.rsvps[rsvp.ID] = &rsvp
	return rsvp, nil
}

func (repo *volunteerRepository) DeleteRSVP(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rsvps[id]; !ok {
		return volunteer.ErrRSVPNotFound
	}
	delete(repo.db.rsvps, id)
	return nil
}

func (repo *volunteerRepository) CountConfirmedByEvent(_ context.Context, eventID string) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, rsvp := range repo.db.rsvps {
		if rsvp.EventID == eventID && rsvp.Status == volunteer.StatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (repo *volunteerRepository) QueryRSVPsByEvent(_ context.Context, eventID string) ([]volunteer.RSVP, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rsvps := make([]volunteer.RSVP, 0)
	for _, rsvp := range repo.db.rsvps {
		if rsvp.EventID != eventID {
			continue
		}
		r := *rsvp
		if vol, ok := repo.db.volunteers[r.VolunteerID]; ok {
			v := *vol
			r.Volunteer = &v
		}
		rsvps = append(rsvps, r)
	}
	sort.Slice(rsvps, func(i, j int) bool { return rsvps[i].CreatedAt.Before(rsvps[j].CreatedAt) })
	return rsvps, nil
}

func (repo *volunteerRepository) QueryHistoryByVolunteer(_ context.Context, volunteerID string) ([]volunteer.HistoryEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]volunteer.HistoryEntry, 0)
	for _, rsvp := range repo.db.rsvps {
		if rsvp.VolunteerID != volunteerID {
			continue
		}
		entry := volunteer.HistoryEntry{ID: rsvp.ID, Status: rsvp.Status}

		repo.events.RLock()
		if ev, ok := repo.events.table[rsvp.EventID]; ok {
			entry.EventTitle = ev.Title
			entry.EventStart = ev.Start
			for _, role := range ev.Roles {
				if role.ID == rsvp.RoleID {
					entry.RoleName = role.Name
					break
				}
			}
		}
		repo.events.RUnlock()

		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EventStart.After(entries[j].EventStart) })
	return entries, nil
}
