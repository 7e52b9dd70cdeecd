package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/steliasaustin/outreach/core/event"
)

type eventRepository struct {
	db *gorm.DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *gorm.DB) event.Repository {
	return &eventRepository{db: db}
}

func (repo eventRepository) CreateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	for i := range ev.Roles {
		if ev.Roles[i].ID == "" {
			ev.Roles[i].ID = uuid.NewString()
		}
		ev.Roles[i].EventID = ev.ID
	}
	if err := repo.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return event.Event{}, errors.Wrap(err, "creating event")
	}
	return ev, nil
}

func (repo eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	var ev event.Event
	err := repo.db.WithContext(ctx).Preload("Roles").First(&ev, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, errors.Wrap(err, "getting event")
	}
	return ev, nil
}

func (repo eventRepository) GetPublishedEventByID(ctx context.Context, id string) (event.Event, error) {
	var ev event.Event
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		First(&ev, "id = ? AND status = ?", id, event.StatusPublished).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, errors.Wrap(err, "getting published event")
	}
	return ev, nil
}

func (repo eventRepository) QueryUpcomingPublished(ctx context.Context, from time.Time) ([]event.Event, error) {
	var events []event.Event
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("status = ? AND date >= ?", event.StatusPublished, from).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying upcoming events")
	}
	return events, nil
}

func (repo eventRepository) QueryEventsByOrganizer(ctx context.Context, organizerID string, externalOnly bool) ([]event.Event, error) {
	q := repo.db.WithContext(ctx).Preload("Roles").Where("organizer_id = ?", organizerID)
	if externalOnly {
		q = q.Where("is_external = ?", true)
	}
	var events []event.Event
	if err := q.Order("date DESC").Find(&events).Error; err != nil {
		return nil, errors.Wrap(err, "querying organizer events")
	}
	return events, nil
}

func (repo eventRepository) QueryPendingProposals(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("is_external = ? AND status = ?", true, event.StatusDraft).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying pending proposals")
	}
	return events, nil
}

func (repo eventRepository) QueryRolesByEvent(ctx context.Context, eventID string) ([]event.Role, error) {
	var roles []event.Role
	err := repo.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&roles).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying event roles")
	}
	return roles, nil
}

// UpdateEvent replaces the event row and its role set.
func (repo eventRepository) UpdateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	for i := range ev.Roles {
		if ev.Roles[i].ID == "" {
			ev.Roles[i].ID = uuid.NewString()
		}
		ev.Roles[i].EventID = ev.ID
	}
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", ev.ID).Delete(&event.Role{}).Error; err != nil {
			return err
		}
		return tx.Save(&ev).Error
	})
	if err != nil {
		return event.Event{}, errors.Wrap(err, "updating event")
	}
	return ev, nil
}

func (repo eventRepository) SetEventStatus(ctx context.Context, id string, status event.Status) (event.Event, error) {
	res := repo.db.WithContext(ctx).
		Model(&event.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return event.Event{}, errors.Wrap(res.Error, "setting event status")
	}
	if res.RowsAffected == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return repo.GetEventByID(ctx, id)
}

func (repo eventRepository) DeleteEvent(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&event.Event{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting event")
	}
	if res.RowsAffected == 0 {
		return event.ErrNotFound
	}
	return nil
}

func (repo eventRepository) CountEventsByMinistry(ctx context.Context, ministryID string) (int, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&event.Event{}).
		Where("ministry_id = ?", ministryID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "counting ministry events")
	}
	return int(count), nil
}
