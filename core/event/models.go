package event

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"

	"github.com/steliasaustin/outreach/core"
)

// Statuses an event moves through. Proposals start as draft and are
// published (approved) or cancelled (declined) by an admin/organizer.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type Event struct {
	ID                string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title             string         `json:"title" gorm:"size:255;not null"`
	Description       string         `json:"description" gorm:"type:text;not null"`
	Start             time.Time      `json:"date" gorm:"column:date;index;not null"`
	End               *time.Time     `json:"endDate" gorm:"column:end_date"`
	Location          string         `json:"location" gorm:"size:255;not null"`
	Address           string         `json:"address" gorm:"size:255"`
	Status            Status         `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	MaxVolunteers     *int           `json:"maxVolunteers"` // nil = unlimited
	WhatToBring       pq.StringArray `json:"whatToBring" gorm:"type:text[]"`
	ImageURL          string         `json:"imageUrl" gorm:"size:500"`
	IsExternal        bool           `json:"isExternal" gorm:"index"`
	IsRecurring       bool           `json:"isRecurring"`
	RecurrencePattern string         `json:"recurrencePattern,omitempty" gorm:"size:50"`
	ExternalOrganizer string         `json:"externalOrganizer,omitempty" gorm:"size:255"`
	OrganizerID       string         `json:"organizerId" gorm:"type:varchar(36);index;not null"`
	MinistryID        string         `json:"ministryId,omitempty" gorm:"type:varchar(36);index"`
	CreatedAt         time.Time      `json:"created_at"` // UTC
	UpdatedAt         time.Time      `json:"updated_at"` // UTC

	Roles []Role `json:"roles,omitempty" gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (e *Event) IsPast(now time.Time) bool {
	return e.Start.Before(now)
}

// Role is a named slot volunteers can sign up under. Capacity is enforced
// at the event level; roles only label and group RSVPs.
type Role struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	EventID     string `json:"eventId" gorm:"type:varchar(36);index;not null"`
	Name        string `json:"name" gorm:"size:150;not null"`
	SpotsNeeded int    `json:"spotsNeeded" gorm:"default:1"`
}

// NewEvent contains information needed to create or update an Event.
// It mirrors the public event form.
type NewEvent struct {
	Title             string     `json:"title" validate:"required,min=3"`
	Description       string     `json:"description" validate:"required,min=10"`
	Start             time.Time  `json:"date" validate:"required"`
	End               *time.Time `json:"endDate"`
	Location          string     `json:"location" validate:"required,min=2"`
	Address           string     `json:"address"`
	MaxVolunteers     *int       `json:"maxVolunteers" validate:"omitempty,min=1"`
	WhatToBring       []string   `json:"whatToBring"`
	MinistryID        string     `json:"ministryId"`
	ImageURL          string     `json:"imageUrl" validate:"omitempty,url"`
	IsExternal        bool       `json:"isExternal"`
	IsRecurring       bool       `json:"isRecurring"`
	RecurrencePattern string     `json:"recurrencePattern"`
	ExternalOrganizer string     `json:"externalOrganizer"`
	Roles             []NewRole  `json:"roles" validate:"omitempty,dive"`
}

type NewRole struct {
	Name        string `json:"name" validate:"required"`
	SpotsNeeded int    `json:"spotsNeeded" validate:"omitempty,min=1"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Location = core.CleanString(ne.Location)
	ne.RecurrencePattern = core.CleanString(ne.RecurrencePattern, true /* lower */)
	return validate.Struct(ne)
}

// Occurrence is one entry of the public calendar feed, after recurring
// events have been expanded. Synthetic occurrences reuse the base EventID.
type Occurrence struct {
	EventID    string    `json:"id"`
	Title      string    `json:"title"`
	Start      time.Time `json:"date"`
	IsExternal bool      `json:"isExternal"`
	MinistryID string    `json:"ministryId,omitempty"`
}
