package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/steliasaustin/outreach/core/event"
	"github.com/steliasaustin/outreach/core/volunteer"
)

type volunteerRepository struct {
	db *gorm.DB
}

var _ volunteer.Repository = (*volunteerRepository)(nil)

func NewVolunteerRepository(db *gorm.DB) volunteer.Repository {
	return &volunteerRepository{db: db}
}

func (repo volunteerRepository) GetVolunteerByID(ctx context.Context, id string) (volunteer.Volunteer, error) {
	var vol volunteer.Volunteer
	err := repo.db.WithContext(ctx).First(&vol, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return volunteer.Volunteer{}, volunteer.ErrNotFound
		}
		return volunteer.Volunteer{}, errors.Wrap(err, "getting volunteer")
	}
	return vol, nil
}

func (repo volunteerRepository) GetVolunteerByEmail(ctx context.Context, email string) (volunteer.Volunteer, error) {
	var vol volunteer.Volunteer
	err := repo.db.WithContext(ctx).First(&vol, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return volunteer.Volunteer{}, volunteer.ErrNotFound
		}
		return volunteer.Volunteer{}, errors.Wrap(err, "getting volunteer by email")
	}
	return vol, nil
}

func (repo volunteerRepository) CreateVolunteer(ctx context.Context, vol volunteer.Volunteer) (volunteer.Volunteer, error) {
	if vol.ID == "" {
		vol.ID = uuid.NewString()
	}
	if err := repo.db.WithContext(ctx).Create(&vol).Error; err != nil {
		return volunteer.Volunteer{}, errors.Wrap(err, "creating volunteer")
	}
	return vol, nil
}

func (repo volunteerRepository) UpdateVolunteer(ctx context.Context, vol volunteer.Volunteer) (volunteer.Volunteer, error) {
	if err := repo.db.WithContext(ctx).Save(&vol).Error; err != nil {
		return volunteer.Volunteer{}, errors.Wrap(err, "updating volunteer")
	}
	return vol, nil
}

func (repo volunteerRepository) GetRSVP(ctx context.Context, volunteerID, eventID string) (volunteer.RSVP, error) {
	var rsvp volunteer.RSVP
	err := repo.db.WithContext(ctx).
		First(&rsvp, "volunteer_id = ? AND event_id = ?", volunteerID, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return volunteer.RSVP{}, volunteer.ErrRSVPNotFound
		}
		return volunteer.RSVP{}, errors.Wrap(err, "getting RSVP")
	}
	return rsvp, nil
}

// CreateRSVP inserts the RSVP while holding a row lock on the event, so two
// concurrent signups for the last spot cannot both pass the capacity check.
// The unique (volunteer, event) index backstops the duplicate check.
func (repo volunteerRepository) CreateRSVP(ctx context.Context, rsvp volunteer.RSVP) (volunteer.RSVP, error) {
	if rsvp.ID == "" {
		rsvp.ID = uuid.NewString()
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev event.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ev, "id = ?", rsvp.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return event.ErrNotFound
			}
			return err
		}

		if ev.MaxVolunteers != nil {
			var count int64
			if err := tx.Model(&volunteer.RSVP{}).
				Where("event_id = ? AND status = ?", rsvp.EventID, volunteer.StatusConfirmed).
				Count(&count).Error; err != nil {
				return err
			}
			if int(count) >= *ev.MaxVolunteers {
				return volunteer.ErrEventFull
			}
		}

		if err := tx.Create(&rsvp).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return volunteer.ErrAlreadySignedUp
			}
			return err
		}
		return nil
	})
	if err != nil {
		switch err {
		case event.ErrNotFound, volunteer.ErrEventFull, volunteer.ErrAlreadySignedUp:
			return volunteer.RSVP{}, err
		}
		return volunteer.RSVP{}, errors.Wrap(err, "creating RSVP")
	}
	return rsvp, nil
}

func (repo volunteerRepository) DeleteRSVP(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&volunteer.RSVP{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting RSVP")
	}
	if res.RowsAffected == 0 {
		return volunteer.ErrRSVPNotFound
	}
	return nil
}

func (repo volunteerRepository) CountConfirmedByEvent(ctx context.Context, eventID string) (int, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&volunteer.RSVP{}).
		Where("event_id = ? AND status = ?", eventID, volunteer.StatusConfirmed).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "counting RSVPs")
	}
	return int(count), nil
}

func (repo volunteerRepository) QueryRSVPsByEvent(ctx context.Context, eventID string) ([]volunteer.RSVP, error) {
	var rsvps []volunteer.RSVP
	err := repo.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rsvps).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying event RSVPs")
	}
	for i := range rsvps {
		var vol volunteer.Volunteer
		if err := repo.db.WithContext(ctx).First(&vol, "id = ?", rsvps[i].VolunteerID).Error; err == nil {
			rsvps[i].Volunteer = &vol
		}
	}
	return rsvps, nil
}

func (repo volunteerRepository) QueryHistoryByVolunteer(ctx context.Context, volunteerID string) ([]volunteer.HistoryEntry, error) {
	var entries []volunteer.HistoryEntry
	err := repo.db.WithContext(ctx).
		Table("rsvps").
		Select("rsvps.id, events.title AS event_title, events.date AS event_start, roles.name AS role_name, rsvps.status").
		Joins("JOIN events ON events.id = rsvps.event_id").
		Joins("LEFT JOIN roles ON roles.id = rsvps.role_id").
		Where("rsvps.volunteer_id = ?", volunteerID).
		Order("events.date DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying volunteer history")
	}
	return entries, nil
}
