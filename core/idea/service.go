package idea

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
)

var (
	ErrNotFound      = errors.New("idea not found")
	ErrInvalidStatus = errors.New("invalid idea status")
)

var statuses = map[Status]bool{
	StatusSubmitted:   true,
	StatusUnderReview: true,
	StatusApproved:    true,
	StatusInPlanning:  true,
	StatusDeclined:    true,
}

type (
	Repository interface {
		CreateIdea(ctx context.Context, idea Idea) (Idea, error)
		GetIdeaByID(ctx context.Context, id string) (Idea, error)
		// QueryOpenIdeas returns all ideas except declined ones, with vote
		// counts attached, ordered by vote count descending.
		QueryOpenIdeas(ctx context.Context) ([]Idea, error)
		SetIdeaStatus(ctx context.Context, id string, status Status) error
		DeleteIdea(ctx context.Context, id string) error

		GetVote(ctx context.Context, ideaID, voterEmail string) (Vote, error)
		CreateVote(ctx context.Context, vote Vote) error
		DeleteVote(ctx context.Context, id string) error
		CountVotesByIdea(ctx context.Context, ideaID string) (int, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		logger   core.Logger
	}
)

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{repo: repo, validate: validate, logger: logger}
}

func (svc *Service) Submit(ctx context.Context, ni NewIdea) (Idea, error) {
	if err := ni.Validate(svc.validate); err != nil {
		return Idea{}, err
	}
	return svc.repo.CreateIdea(ctx, Idea{
		Title:          ni.Title,
		Description:    ni.Description,
		SubmitterName:  ni.SubmitterName,
		SubmitterEmail: ni.SubmitterEmail,
		Status:         StatusSubmitted,
		CreatedAt:      time.Now().UTC(),
	})
}

func (svc *Service) Get(ctx context.Context, id string) (Idea, error) {
	return svc.repo.GetIdeaByID(ctx, id)
}

// List returns ideas open for community voting, most supported first.
func (svc *Service) List(ctx context.Context) ([]Idea, error) {
	return svc.repo.QueryOpenIdeas(ctx)
}

func (svc *Service) SetStatus(ctx context.Context, id string, status Status) error {
	if !statuses[status] {
		return ErrInvalidStatus
	}
	if _, err := svc.repo.GetIdeaByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.SetIdeaStatus(ctx, id, status)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.GetIdeaByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteIdea(ctx, id)
}

// ToggleVote adds the voter's support for an idea, or withdraws it when the
// voter already supported it. It returns the resulting vote count.
func (svc *Service) ToggleVote(ctx context.Context, ideaID, voterEmail string) (int, error) {
	voterEmail = core.CleanString(voterEmail, true /* lower */)
	if _, err := svc.repo.GetIdeaByID(ctx, ideaID); err != nil {
		return 0, err
	}

	vote, err := svc.repo.GetVote(ctx, ideaID, voterEmail)
	switch {
	case err == nil:
		if err = svc.repo.DeleteVote(ctx, vote.ID); err != nil {
			return 0, err
		}
	case errors.Cause(err) == ErrNotFound:
		if err = svc.repo.CreateVote(ctx, Vote{
			IdeaID:     ideaID,
			VoterEmail: voterEmail,
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			return 0, err
		}
	default:
		return 0, errors.Wrap(err, "checking existing vote")
	}

	return svc.repo.CountVotesByIdea(ctx, ideaID)
}
