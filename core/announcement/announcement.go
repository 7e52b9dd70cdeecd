package announcement

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
)

var ErrNotFound = errors.New("announcement not found")

type (
	Announcement struct {
		ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
		Title       string     `json:"title"`
		Body        string     `json:"body"`
		PreviewText string     `json:"previewText"`
		IsPinned    bool       `json:"isPinned"`
		ExpiresAt   *time.Time `json:"expiresAt"`
		AuthorID    string     `json:"authorId" gorm:"type:varchar(36)"`
		PublishedAt time.Time  `json:"publishedAt"`
	}

	NewAnnouncement struct {
		Title       string     `json:"title" validate:"required,min=3"`
		Body        string     `json:"body" validate:"required,min=10"`
		PreviewText string     `json:"previewText"`
		IsPinned    bool       `json:"isPinned"`
		ExpiresAt   *time.Time `json:"expiresAt"`
	}

	Repository interface {
		CreateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		GetAnnouncementByID(ctx context.Context, id string) (Announcement, error)
		// QueryAnnouncements returns announcements newest first, pinned ones
		// leading regardless of age. Expired announcements are excluded.
		QueryAnnouncements(ctx context.Context, now time.Time) ([]Announcement, error)
		UpdateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		DeleteAnnouncement(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		logger   core.Logger
	}
)

func (na *NewAnnouncement) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Body = core.CleanString(na.Body)
	na.PreviewText = core.CleanString(na.PreviewText)
	return validate.Struct(na)
}

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{repo: repo, validate: validate, logger: logger}
}

func (svc *Service) Create(ctx context.Context, authorID string, na NewAnnouncement) (Announcement, error) {
	if err := na.Validate(svc.validate); err != nil {
		return Announcement{}, err
	}
	return svc.repo.CreateAnnouncement(ctx, Announcement{
		Title:       na.Title,
		Body:        na.Body,
		PreviewText: na.PreviewText,
		IsPinned:    na.IsPinned,
		ExpiresAt:   na.ExpiresAt,
		AuthorID:    authorID,
		PublishedAt: time.Now().UTC(),
	})
}

func (svc *Service) Get(ctx context.Context, id string) (Announcement, error) {
	return svc.repo.GetAnnouncementByID(ctx, id)
}

func (svc *Service) List(ctx context.Context) ([]Announcement, error) {
	return svc.repo.QueryAnnouncements(ctx, time.Now().UTC())
}

func (svc *Service) Update(ctx context.Context, id string, na NewAnnouncement) (Announcement, error) {
	if err := na.Validate(svc.validate); err != nil {
		return Announcement{}, err
	}
	ann, err := svc.repo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return Announcement{}, err
	}
	ann.Title = na.Title
	ann.Body = na.Body
	ann.PreviewText = na.PreviewText
	ann.IsPinned = na.IsPinned
	ann.ExpiresAt = na.ExpiresAt
	return svc.repo.UpdateAnnouncement(ctx, ann)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.GetAnnouncementByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteAnnouncement(ctx, id)
}
