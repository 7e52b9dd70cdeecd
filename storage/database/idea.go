package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/steliasaustin/outreach/core/idea"
)

type ideaRepository struct {
	db *gorm.DB
}

var _ idea.Repository = (*ideaRepository)(nil)

func NewIdeaRepository(db *gorm.DB) idea.Repository {
	return &ideaRepository{db: db}
}

func (repo ideaRepository) CreateIdea(ctx context.Context, id idea.Idea) (idea.Idea, error) {
	if id.ID == "" {
		id.ID = uuid.NewString()
	}
	if err := repo.db.WithContext(ctx).Create(&id).Error; err != nil {
		return idea.Idea{}, errors.Wrap(err, "creating idea")
	}
	return id, nil
}

func (repo ideaRepository) GetIdeaByID(ctx context.Context, id string) (idea.Idea, error) {
	var i idea.Idea
	err := repo.db.WithContext(ctx).First(&i, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return idea.Idea{}, idea.ErrNotFound
		}
		return idea.Idea{}, errors.Wrap(err, "getting idea")
	}
	i.Votes, err = repo.CountVotesByIdea(ctx, i.ID)
	if err != nil {
		return idea.Idea{}, err
	}
	return i, nil
}

func (repo ideaRepository) QueryOpenIdeas(ctx context.Context) ([]idea.Idea, error) {
	var ideas []idea.Idea
	err := repo.db.WithContext(ctx).
		Select("ideas.*, COUNT(votes.id) AS votes").
		Joins("LEFT JOIN votes ON votes.idea_id = ideas.id").
		Where("ideas.status <> ?", idea.StatusDeclined).
		Group("ideas.id").
		Order("votes DESC, ideas.created_at ASC").
		Find(&ideas).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying ideas")
	}
	return ideas, nil
}

func (repo ideaRepository) SetIdeaStatus(ctx context.Context, id string, status idea.Status) error {
	res := repo.db.WithContext(ctx).
		Model(&idea.Idea{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return errors.Wrap(res.Error, "setting idea status")
	}
	if res.RowsAffected == 0 {
		return idea.ErrNotFound
	}
	return nil
}

func (repo ideaRepository) DeleteIdea(ctx context.Context, id string) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idea_id = ?", id).Delete(&idea.Vote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&idea.Idea{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return idea.ErrNotFound
		}
		return nil
	})
	if err == idea.ErrNotFound {
		return err
	}
	return errors.Wrap(err, "deleting idea")
}

func (repo ideaRepository) GetVote(ctx context.Context, ideaID, voterEmail string) (idea.Vote, error) {
	var vote idea.Vote
	err := repo.db.WithContext(ctx).
		First(&vote, "idea_id = ? AND voter_email = ?", ideaID, voterEmail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return idea.Vote{}, idea.ErrNotFound
		}
		return idea.Vote{}, errors.Wrap(err, "getting vote")
	}
	return vote, nil
}

func (repo ideaRepository) CreateVote(ctx context.Context, vote idea.Vote) error {
	if vote.ID == "" {
		vote.ID = uuid.NewString()
	}
	if err := repo.db.WithContext(ctx).Create(&vote).Error; err != nil {
		// a concurrent toggle already added this vote
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return errors.Wrap(err, "creating vote")
	}
	return nil
}

func (repo ideaRepository) DeleteVote(ctx context.Context, id string) error {
	if err := repo.db.WithContext(ctx).Delete(&idea.Vote{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "deleting vote")
	}
	return nil
}

func (repo ideaRepository) CountVotesByIdea(ctx context.Context, ideaID string) (int, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&idea.Vote{}).
		Where("idea_id = ?", ideaID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "counting votes")
	}
	return int(count), nil
}
