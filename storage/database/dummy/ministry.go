package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/steliasaustin/outreach/core/ministry"
)

type ministryRepository struct {
	db *ministryTable
}

var _ ministry.Repository = (*ministryRepository)(nil) // interface compliance check

func NewMinistryRepository(db *DB) ministry.Repository {
	return &ministryRepository{db: db.ministry}
}

func (repo *ministryRepository) CreateMinistry(_ context.Context, min ministry.Ministry) (ministry.Ministry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if min.ID == "" {
		min.ID = uuid.NewString()
	}
	repo.db.table[min.ID] = &min
	return min, nil
}

func (repo *ministryRepository) GetMinistryByID(_ context.Context, id string) (ministry.Ministry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if min, ok := repo.db.table[id]; ok {
		return *min, nil
	}
	return ministry.Ministry{}, ministry.ErrNotFound
}

func (repo *ministryRepository) QueryMinistries(_ context.Context) ([]ministry.Ministry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	mins := make([]ministry.Ministry, 0, len(repo.db.table))
	for _, min := range repo.db.table {
		mins = append(mins, *min)
	}
	sort.Slice(mins, func(i, j int) bool { return mins[i].Name < mins[j].Name })
	return mins, nil
}

func (repo *ministryRepository) UpdateMinistry(_ context.Context, min ministry.Ministry) (ministry.Ministry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[min.ID]; !ok {
		return ministry.Ministry{}, ministry.ErrNotFound
	}
	repo.db.table[min.ID] = &min
	return min, nil
}

func (repo *ministryRepository) DeleteMinistry(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return ministry.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
