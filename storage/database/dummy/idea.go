package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/steliasaustin/outreach/core/idea"
)

type ideaRepository struct {
	db *ideaTable
}

var _ idea.Repository = (*ideaRepository)(nil) // interface compliance check

func NewIdeaRepository(db *DB) idea.Repository {
	return &ideaRepository{db: db.idea}
}

func (repo *ideaRepository) CreateIdea(_ context.Context, id idea.Idea) (idea.Idea, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if id.ID == "" {
		id.ID = uuid.NewString()
	}
	repo.db.ideas[id.ID] = &id
	return id, nil
}

func (repo *ideaRepository) GetIdeaByID(_ context.Context, id string) (idea.Idea, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i, ok := repo.db.ideas[id]; ok {
		out := *i
		out.Votes = repo.countVotes(id)
		return out, nil
	}
	return idea.Idea{}, idea.ErrNotFound
}

func (repo *ideaRepository) QueryOpenIdeas(_ context.Context) ([]idea.Idea, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ideas := make([]idea.Idea, 0, len(repo.db.ideas))
	for _, i := range repo.db.ideas {
		if i.Status == idea.StatusDeclined {
			continue
		}
		out := *i
		out.Votes = repo.countVotes(i.ID)
		ideas = append(ideas, out)
	}
	sort.Slice(ideas, func(i, j int) bool {
		if ideas[i].Votes != ideas[j].Votes {
			return ideas[i].Votes > ideas[j].Votes
		}
		return ideas[i].CreatedAt.Before(ideas[j].CreatedAt)
	})
	return ideas, nil
}

func (repo *ideaRepository) SetIdeaStatus(_ context.Context, id string, status idea.Status) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i, ok := repo.db.ideas[id]
	if !ok {
		return idea.ErrNotFound
	}
	i.Status = status
	return nil
}

func (repo *ideaRepository) DeleteIdea(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.ideas[id]; !ok {
		return idea.ErrNotFound
	}
	delete(repo.db.ideas, id)
	for vid, vote := range repo.db.votes {
		if vote.IdeaID == id {
			delete(repo.db.votes, vid)
		}
	}
	return nil
}

func (repo *ideaRepository) GetVote(_ context.Context, ideaID, voterEmail string) (idea.Vote, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, vote := range repo.db.votes {
		if vote.IdeaID == ideaID && vote.VoterEmail == voterEmail {
			return *vote, nil
		}
	}
	return idea.Vote{}, idea.ErrNotFound
}

func (repo *ideaRepository) CreateVote(_ context.Context, vote idea.Vote) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.votes {
		if existing.IdeaID == vote.IdeaID && existing.VoterEmail == vote.VoterEmail {
			return nil
		}
	}
	if vote.ID == "" {
		vote.ID = uuid.NewString()
	}
	repo.db.votes[vote.ID] = &vote
	return nil
}

func (repo *ideaRepository) DeleteVote(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.votes, id)
	return nil
}

func (repo *ideaRepository) CountVotesByIdea(_ context.Context, ideaID string) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.countVotes(ideaID), nil
}

// callers must hold the lock
func (repo *ideaRepository) countVotes(ideaID string) int {
	var count int
	for _, vote := range repo.db.votes {
		if vote.IdeaID == ideaID {
			count++
		}
	}
	return count
}
