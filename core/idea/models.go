package idea

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/steliasaustin/outreach/core"
)

type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusInPlanning  Status = "in_planning"
	StatusDeclined    Status = "declined"
)

type (
	Idea struct {
		ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
		Title          string    `json:"title"`
		Description    string    `json:"description"`
		SubmitterName  string    `json:"submitterName"`
		SubmitterEmail string    `json:"submitterEmail"`
		Status         Status    `json:"status" gorm:"type:varchar(20);default:submitted"`
		Votes          int       `json:"votes" gorm:"-"`
		CreatedAt      time.Time `json:"createdAt"`
	}

	// Vote records one supporter per idea; the (email, idea) pair is unique.
	Vote struct {
		ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
		IdeaID     string    `json:"ideaId" gorm:"type:varchar(36);index:idx_vote_email_idea,unique"`
		VoterEmail string    `json:"voterEmail" gorm:"index:idx_vote_email_idea,unique"`
		CreatedAt  time.Time `json:"createdAt"`
	}

	NewIdea struct {
		Title          string `json:"title" validate:"required,min=3"`
		Description    string `json:"description" validate:"required,min=10"`
		SubmitterName  string `json:"submitterName" validate:"required,min=2"`
		SubmitterEmail string `json:"submitterEmail" validate:"required,email"`
	}
)

func (ni *NewIdea) Validate(validate *validator.Validate) error {
	ni.Title = core.CleanString(ni.Title)
	ni.Description = core.CleanString(ni.Description)
	ni.SubmitterName = core.CleanString(ni.SubmitterName)
	ni.SubmitterEmail = core.CleanString(ni.SubmitterEmail, true /* lower */)
	return validate.Struct(ni)
}
