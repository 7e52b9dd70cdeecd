package volunteer

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/steliasaustin/outreach/core"
)

// RSVP statuses. The signup path only ever creates confirmed records;
// waitlisted/cancelled are set through privileged admin mutation.
type RSVPStatus string

const (
	StatusConfirmed  RSVPStatus = "confirmed"
	StatusWaitlisted RSVPStatus = "waitlisted"
	StatusCancelled  RSVPStatus = "cancelled"
)

// Volunteer is keyed by email: the record is created lazily on first signup
// and updated, never re-created, on later signups from the same address.
type Volunteer struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"size:150;not null"`
	Email     string    `json:"email" gorm:"size:150;uniqueIndex;not null"`
	Phone     string    `json:"phone,omitempty" gorm:"size:30"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// RSVP joins a Volunteer to an Event. At most one RSVP may exist per
// (volunteer, event) pair; the storage layer enforces it with a unique index.
type RSVP struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VolunteerID string     `json:"volunteerId" gorm:"type:varchar(36);not null;index:idx_rsvp_volunteer_event,unique"`
	EventID     string     `json:"eventId" gorm:"type:varchar(36);not null;index:idx_rsvp_volunteer_event,unique"`
	RoleID      string     `json:"roleId,omitempty" gorm:"type:varchar(36)"`
	Note        string     `json:"note,omitempty" gorm:"type:text"`
	Status      RSVPStatus `json:"status" gorm:"type:varchar(20);not null;default:'confirmed';index"`
	CreatedAt   time.Time  `json:"created_at"` // UTC

	// denormalized for confirmation use; not stored
	Volunteer  *Volunteer `json:"volunteer,omitempty" gorm:"-"`
	EventTitle string     `json:"eventTitle,omitempty" gorm:"-"`
}

// HistoryEntry is one row of a volunteer's signup history.
type HistoryEntry struct {
	ID         string     `json:"id"`
	EventTitle string     `json:"eventTitle"`
	EventStart time.Time  `json:"eventDate"`
	RoleName   string     `json:"roleName,omitempty"`
	Status     RSVPStatus `json:"status"`
}

// SignUp contains the information a volunteer submits on the signup form.
type SignUp struct {
	Name   string `json:"name" validate:"required,min=2"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone"`
	RoleID string `json:"roleId"`
	Note   string `json:"note"`
}

func (su *SignUp) Validate(validate *validator.Validate) error {
	su.Name = core.CleanString(su.Name)
	su.Email = core.CleanString(su.Email, true /* lower */)
	su.Phone = core.CleanString(su.Phone)
	return validate.Struct(su)
}
