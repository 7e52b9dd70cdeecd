package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/event"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// RoleChangeRequest updates a user's role.
	RoleChangeRequest struct {
		Role string `json:"role" validate:"required"`
	}

	// VoteRequest identifies the voter toggling support for an idea.
	VoteRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	VoteResponse struct {
		Votes int `json:"votes"`
	}

	// StatusChangeRequest moves an idea through the review pipeline.
	StatusChangeRequest struct {
		Status string `json:"status" validate:"required"`
	}

	// ProposalRequest wraps the event form with the proposing organization.
	ProposalRequest struct {
		event.NewEvent
		Organization string `json:"organization"`
	}
)

func (r *LoginRequest) Validate(validate *validator.Validate) error {
	r.Email = core.CleanString(r.Email, true /* lower */)
	return validate.Struct(r)
}

func (r *RoleChangeRequest) Validate(validate *validator.Validate) error {
	r.Role = core.CleanString(r.Role, true /* lower */)
	return validate.Struct(r)
}

func (r *VoteRequest) Validate(validate *validator.Validate) error {
	r.Email = core.CleanString(r.Email, true /* lower */)
	return validate.Struct(r)
}

func (r *StatusChangeRequest) Validate(validate *validator.Validate) error {
	r.Status = core.CleanString(r.Status, true /* lower */)
	return validate.Struct(r)
}
