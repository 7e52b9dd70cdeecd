package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/steliasaustin/outreach/core/announcement"
)

type announcementRepository struct {
	db *gorm.DB
}

var _ announcement.Repository = (*announcementRepository)(nil)

func NewAnnouncementRepository(db *gorm.DB) announcement.Repository {
	return &announcementRepository{db: db}
}

func (repo announcementRepository) CreateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	if ann.ID == "" {
		ann.ID = uuid.NewString()
	}
	if err := repo.db.WithContext(ctx).Create(&ann).Error; err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "creating announcement")
	}
	return ann, nil
}

func (repo announcementRepository) GetAnnouncementByID(ctx context.Context, id string) (announcement.Announcement, error) {
	var ann announcement.Announcement
	err := repo.db.WithContext(ctx).First(&ann, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return announcement.Announcement{}, announcement.ErrNotFound
		}
		return announcement.Announcement{}, errors.Wrap(err, "getting announcement")
	}
	return ann, nil
}

func (repo announcementRepository) QueryAnnouncements(ctx context.Context, now time.Time) ([]announcement.Announcement, error) {
	var anns []announcement.Announcement
	err := repo.db.WithContext(ctx).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("is_pinned DESC, published_at DESC").
		Find(&anns).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}
	return anns, nil
}

func (repo announcementRepository) UpdateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	if err := repo.db.WithContext(ctx).Save(&ann).Error; err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "updating announcement")
	}
	return ann, nil
}

func (repo announcementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&announcement.Announcement{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting announcement")
	}
	if res.RowsAffected == 0 {
		return announcement.ErrNotFound
	}
	return nil
}
