package user_test

import (
	"context"
	"testing"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/user"
	logsvc "github.com/steliasaustin/outreach/services/logger"
	dummydb "github.com/steliasaustin/outreach/storage/database/dummy"
)

var ctx = context.Background()

func setup(t *testing.T) *user.Service {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	validate, _ := core.NewValidator()
	return user.NewService(dummydb.NewUserRepository(db), validate, logsvc.NewNopLogger())
}

func newUser(name, email string) user.NewUser {
	return user.NewUser{Name: name, Email: email, Password: "v3ry-s3cret!"}
}

func TestServiceCreate(t *testing.T) {
	svc := setup(t)

	usr, err := svc.Create(ctx, newUser("Fr. John", "  John@SteliasAustin.org "), user.RoleAdmin)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if usr.Email != "john@steliasaustin.org" {
		t.Errorf("Create() email not cleaned: %q", usr.Email)
	}
	if usr.Role != user.RoleAdmin {
		t.Errorf("Create() role = %v, want %v", usr.Role, user.RoleAdmin)
	}
	if len(usr.PasswordHash) == 0 {
		t.Error("Create() password not hashed")
	}

	tests := []struct {
		name    string
		newUser user.NewUser
		role    user.Role
		wantErr error
	}{
		{"duplicate email", newUser("Someone Else", "john@steliasaustin.org"), user.RoleCommunity, user.ErrEmailExists},
		{"bad role", newUser("Maria Garcia", "maria@example.com"), user.Role("superuser"), user.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.newUser, tt.role); err != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("short password", func(t *testing.T) {
		nu := newUser("Maria Garcia", "maria@example.com")
		nu.Password = "short"
		if _, err := svc.Create(ctx, nu, user.RoleCommunity); err == nil {
			t.Error("Create() accepted a short password")
		}
	})
}

func TestServiceAuthenticate(t *testing.T) {
	svc := setup(t)

	if _, err := svc.Create(ctx, newUser("Fr. John", "john@steliasaustin.org"), user.RoleAdmin); err != nil {
		t.Fatalf("Create(): %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"ok", "john@steliasaustin.org", "v3ry-s3cret!", nil},
		{"case-insensitive email", "John@SteliasAustin.ORG", "v3ry-s3cret!", nil},
		{"wrong password", "john@steliasaustin.org", "not-it", user.ErrNotFound},
		{"unknown email", "ghost@example.com", "v3ry-s3cret!", user.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Authenticate(ctx, tt.email, tt.password)
			if err != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && usr.LastLogin == nil {
				t.Error("Authenticate() did not record login time")
			}
		})
	}
}

func TestServiceSetRole(t *testing.T) {
	svc := setup(t)

	usr, err := svc.Create(ctx, newUser("Maria Garcia", "maria@example.com"), user.RoleCommunity)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	promoted, err := svc.SetRole(ctx, usr.ID, user.RoleOrganizer)
	if err != nil {
		t.Fatalf("SetRole(): %v", err)
	}
	if promoted.Role != user.RoleOrganizer {
		t.Errorf("SetRole() role = %v, want %v", promoted.Role, user.RoleOrganizer)
	}

	if _, err := svc.SetRole(ctx, usr.ID, user.Role("superuser")); err != user.ErrInvalidRole {
		t.Errorf("SetRole() bad role error = %v, wantErr %v", err, user.ErrInvalidRole)
	}
	if _, err := svc.SetRole(ctx, "nope", user.RoleAdmin); err != user.ErrNotFound {
		t.Errorf("SetRole() unknown user error = %v, wantErr %v", err, user.ErrNotFound)
	}
}

func TestServiceDelete(t *testing.T) {
	svc := setup(t)

	usr, err := svc.Create(ctx, newUser("Maria Garcia", "maria@example.com"), user.RoleCommunity)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	if err := svc.Delete(ctx, "nope"); err != user.ErrNotFound {
		t.Errorf("Delete() unknown error = %v, wantErr %v", err, user.ErrNotFound)
	}
	if err := svc.Delete(ctx, usr.ID); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	if _, err := svc.Get(ctx, usr.ID); err != user.ErrNotFound {
		t.Errorf("Get() after Delete error = %v, wantErr %v", err, user.ErrNotFound)
	}
}
