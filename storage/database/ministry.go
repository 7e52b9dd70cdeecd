package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/steliasaustin/outreach/core/ministry"
)

type ministryRepository struct {
	db *gorm.DB
}

var _ ministry.Repository = (*ministryRepository)(nil)

func NewMinistryRepository(db *gorm.DB) ministry.Repository {
	return &ministryRepository{db: db}
}

func (repo ministryRepository) CreateMinistry(ctx context.Context, min ministry.Ministry) (ministry.Ministry, error) {
	if min.ID == "" {
		min.ID = uuid.NewString()
	}
	if err := repo.db.WithContext(ctx).Create(&min).Error; err != nil {
		return ministry.Ministry{}, errors.Wrap(err, "creating ministry")
	}
	return min, nil
}

func (repo ministryRepository) GetMinistryByID(ctx context.Context, id string) (ministry.Ministry, error) {
	var min ministry.Ministry
	err := repo.db.WithContext(ctx).First(&min, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ministry.Ministry{}, ministry.ErrNotFound
		}
		return ministry.Ministry{}, errors.Wrap(err, "getting ministry")
	}
	return min, nil
}

func (repo ministryRepository) QueryMinistries(ctx context.Context) ([]ministry.Ministry, error) {
	var mins []ministry.Ministry
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&mins).Error; err != nil {
		return nil, errors.Wrap(err, "querying ministries")
	}
	return mins, nil
}

func (repo ministryRepository) UpdateMinistry(ctx context.Context, min ministry.Ministry) (ministry.Ministry, error) {
	if err := repo.db.WithContext(ctx).Save(&min).Error; err != nil {
		return ministry.Ministry{}, errors.Wrap(err, "updating ministry")
	}
	return min, nil
}

func (repo ministryRepository) DeleteMinistry(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&ministry.Ministry{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting ministry")
	}
	if res.RowsAffected == 0 {
		return ministry.ErrNotFound
	}
	return nil
}
