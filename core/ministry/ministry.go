package ministry

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/event"
)

var (
	ErrNotFound = errors.New("ministry not found")
	ErrInUse    = errors.New("ministry has events attached to it")
)

type (
	Ministry struct {
		ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
		Name        string `json:"name" gorm:"uniqueIndex"`
		Description string `json:"description"`
		Color       string `json:"color" gorm:"size:20"`
		ContactName string `json:"contactName"`
	}

	NewMinistry struct {
		Name        string `json:"name" validate:"required,min=2"`
		Description string `json:"description"`
		Color       string `json:"color" validate:"omitempty,hexcolor"`
		ContactName string `json:"contactName"`
	}

	Repository interface {
		CreateMinistry(ctx context.Context, min Ministry) (Ministry, error)
		GetMinistryByID(ctx context.Context, id string) (Ministry, error)
		QueryMinistries(ctx context.Context) ([]Ministry, error)
		UpdateMinistry(ctx context.Context, min Ministry) (Ministry, error)
		DeleteMinistry(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		events   event.Repository
		validate *validator.Validate
	}
)

func (nm *NewMinistry) Validate(validate *validator.Validate) error {
	nm.Name = core.CleanString(nm.Name)
	nm.Description = core.CleanString(nm.Description)
	nm.ContactName = core.CleanString(nm.ContactName)
	return validate.Struct(nm)
}

func NewService(repo Repository, events event.Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, events: events, validate: validate}
}

func (svc *Service) Create(ctx context.Context, nm NewMinistry) (Ministry, error) {
	if err := nm.Validate(svc.validate); err != nil {
		return Ministry{}, err
	}
	return svc.repo.CreateMinistry(ctx, Ministry{
		Name:        nm.Name,
		Description: nm.Description,
		Color:       nm.Color,
		ContactName: nm.ContactName,
	})
}

func (svc *Service) Get(ctx context.Context, id string) (Ministry, error) {
	return svc.repo.GetMinistryByID(ctx, id)
}

func (svc *Service) List(ctx context.Context) ([]Ministry, error) {
	return svc.repo.QueryMinistries(ctx)
}

func (svc *Service) Update(ctx context.Context, id string, nm NewMinistry) (Ministry, error) {
	if err := nm.Validate(svc.validate); err != nil {
		return Ministry{}, err
	}
	min, err := svc.repo.GetMinistryByID(ctx, id)
	if err != nil {
		return Ministry{}, err
	}
	min.Name = nm.Name
	min.Description = nm.Description
	min.Color = nm.Color
	min.ContactName = nm.ContactName
	return svc.repo.UpdateMinistry(ctx, min)
}

// Delete refuses to remove a ministry that still has events pointing at it.
func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.GetMinistryByID(ctx, id); err != nil {
		return err
	}
	count, err := svc.events.CountEventsByMinistry(ctx, id)
	if err != nil {
		return errors.Wrap(err, "counting ministry events")
	}
	if count > 0 {
		return ErrInUse
	}
	return svc.repo.DeleteMinistry(ctx, id)
}
