package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/steliasaustin/outreach/core"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleCommunity Role = "community"
)

var Roles = map[Role]bool{
	RoleAdmin:     true,
	RoleOrganizer: true,
	RoleCommunity: true,
}

type (
	User struct {
		ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
		Name         string     `json:"name"`
		Email        string     `json:"email" gorm:"uniqueIndex"`
		PasswordHash []byte     `json:"-"`
		Role         Role       `json:"role" gorm:"type:varchar(20);default:community"`
		Organization string     `json:"organization"`
		CreatedAt    time.Time  `json:"createdAt"`
		UpdatedAt    time.Time  `json:"updatedAt"`
		LastLogin    *time.Time `json:"lastLogin"`
	}

	NewUser struct {
		Name         string `json:"name" validate:"required,min=2"`
		Email        string `json:"email" validate:"required,email"`
		Password     string `json:"password" validate:"required,min=8"`
		Organization string `json:"organization"`
	}
)

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password))
}

func (u *User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u *User) IsOrganizer() bool { return u.Role == RoleOrganizer }

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Organization = core.CleanString(nu.Organization)
	return validate.Struct(nu)
}
