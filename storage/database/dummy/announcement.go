package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/steliasaustin/outreach/core/announcement"
)

type announcementRepository struct {
	db *announcementTable
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) announcement.Repository {
	return &announcementRepository{db: db.announcement}
}

func (repo *announcementRepository) CreateAnnouncement(_ context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if ann.ID == "" {
		ann.ID = uuid.NewString()
	}
	repo.db.table[ann.ID] = &ann
	return ann, nil
}

func (repo *announcementRepository) GetAnnouncementByID(_ context.Context, id string) (announcement.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ann, ok := repo.db.table[id]; ok {
		return *ann, nil
	}
	return announcement.Announcement{}, announcement.ErrNotFound
}

func (repo *announcementRepository) QueryAnnouncements(_ context.Context, now time.Time) ([]announcement.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	anns := make([]announcement.Announcement, 0, len(repo.db.table))
	for _, ann := range repo.db.table {
		if ann.ExpiresAt != nil && !ann.ExpiresAt.After(now) {
			continue
		}
		anns = append(anns, *ann)
	}
	sort.Slice(anns, func(i, j int) bool {
		if anns[i].IsPinned != anns[j].IsPinned {
			return anns[i].IsPinned
		}
		return anns[i].PublishedAt.After(anns[j].PublishedAt)
	})
	return anns, nil
}

func (repo *announcementRepository) UpdateAnnouncement(_ context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[ann.ID]; !ok {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	repo.db.table[ann.ID] = &ann
	return ann, nil
}

func (repo *announcementRepository) DeleteAnnouncement(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return announcement.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
