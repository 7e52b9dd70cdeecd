package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
	ErrInvalidRole = errors.New("invalid role")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		QueryUsers(ctx context.Context) ([]User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id string) error
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

// Create registers a user with the given role. Registration through the API
// always passes RoleCommunity; the admin CLI may pass RoleAdmin.
func (svc *Service) Create(ctx context.Context, nu NewUser, role Role) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if !Roles[role] {
		return User{}, ErrInvalidRole
	}
	if _, err := svc.repo.GetUserByEmail(ctx, nu.Email); err == nil {
		return User{}, ErrEmailExists
	} else if errors.Cause(err) != ErrNotFound {
		return User{}, errors.Wrap(err, "checking existing user")
	}

	now := time.Now().UTC()
	usr := User{
		Name:         nu.Name,
		Email:        nu.Email,
		Role:         role,
		Organization: nu.Organization,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) Get(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) List(ctx context.Context) ([]User, error) {
	return svc.repo.QueryUsers(ctx)
}

// Authenticate checks credentials and records the login time. It returns
// ErrNotFound for both unknown emails and wrong passwords.
func (svc *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(password); err != nil {
		return User{}, ErrNotFound
	}

	now := time.Now().UTC()
	usr.LastLogin = &now
	if usr, err = svc.repo.UpdateUser(ctx, usr); err != nil {
		return User{}, errors.Wrap(err, "recording login")
	}
	return usr, nil
}

func (svc *Service) SetRole(ctx context.Context, id string, role Role) (User, error) {
	if !Roles[role] {
		return User{}, ErrInvalidRole
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	usr.Role = role
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.GetUserByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteUser(ctx, id)
}
