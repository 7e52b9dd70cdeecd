package dummydb

import (
	"sync"

	"github.com/steliasaustin/outreach/core/announcement"
	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/idea"
	"github.com/steliasaustin/outreach/core/ministry"
	"github.com/steliasaustin/outreach/core/user"
	"github.com/steliasaustin/outreach/core/volunteer"
)

// DB is an in-memory store backing the dummy repositories in tests.
type (
	DB struct {
		event        *eventTable
		volunteer    *volunteerTable
		user         *userTable
		idea         *ideaTable
		announcement *announcementTable
		ministry     *ministryTable
	}

	eventTable struct {
		sync.RWMutex
		table map[string]*event.Event
	}

	volunteerTable struct {
		sync.RWMutex
		volunteers map[string]*volunteer.Volunteer
		rsvps      map[string]*volunteer.RSVP
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	ideaTable struct {
		sync.RWMutex
		ideas map[string]*idea.Idea
		votes map[string]*idea.Vote
	}

	announcementTable struct {
		sync.RWMutex
		table map[string]*announcement.Announcement
	}

	ministryTable struct {
		sync.RWMutex
		table map[string]*ministry.Ministry
	}
)

func Open() (*DB, error) {
	db := &DB{
		event:     &eventTable{table: make(map[string]*event.Event)},
		volunteer: &volunteerTable{volunteers: make(map[string]*volunteer.Volunteer), rsvps: make(map[string]*volunteer.RSVP)},
		user:      &userTable{table: make(map[string]*user.User)},
		idea:      &ideaTable{ideas: make(map[string]*idea.Idea), votes: make(map[string]*idea.Vote)},
		announcement: &announcementTable{
			table: make(map[string]*announcement.Announcement),
		},
		ministry: &ministryTable{table: make(map[string]*ministry.Ministry)},
	}
	return db, nil
}
