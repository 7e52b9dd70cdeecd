package idea_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/steliasaustin/outreach/core"
	"github.com/steliasaustin/outreach/core/idea"
	logsvc "github.com/steliasaustin/outreach/services/logger"
	dummydb "github.com/steliasaustin/outreach/storage/database/dummy"
)

var ctx = context.Background()

func setup(t *testing.T) *idea.Service {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	validate, _ := core.NewValidator()
	return idea.NewService(dummydb.NewIdeaRepository(db), validate, logsvc.NewNopLogger())
}

func newIdea(title string) idea.NewIdea {
	return idea.NewIdea{
		Title:          title,
		Description:    "It would help the neighborhood if we " + title + ".",
		SubmitterName:  "Maria Garcia",
		SubmitterEmail: "maria@example.com",
	}
}

func TestServiceSubmit(t *testing.T) {
	svc := setup(t)

	t.Run("ok", func(t *testing.T) {
		i, err := svc.Submit(ctx, newIdea("started a tool library"))
		if err != nil {
			t.Fatalf("Submit(): %v", err)
		}
		if i.Status != idea.StatusSubmitted {
			t.Errorf("Submit() status = %v, want %v", i.Status, idea.StatusSubmitted)
		}
		if i.ID == "" {
			t.Error("Submit() returned idea without ID")
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		ni := newIdea("started a tool library")
		ni.Title = "x"
		ni.SubmitterEmail = "nope"
		_, err := svc.Submit(ctx, ni)
		if _, ok := err.(validator.ValidationErrors); !ok {
			t.Errorf("Submit() error = %v, want validation errors", err)
		}
	})
}

func TestServiceToggleVote(t *testing.T) {
	svc := setup(t)

	i, err := svc.Submit(ctx, newIdea("started a tool library"))
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}

	if _, err := svc.ToggleVote(ctx, "nope", "maria@example.com"); err != idea.ErrNotFound {
		t.Errorf("ToggleVote() unknown idea error = %v, wantErr %v", err, idea.ErrNotFound)
	}

	count, err := svc.ToggleVote(ctx, i.ID, "Maria@Example.com")
	if err != nil {
		t.Fatalf("ToggleVote() add: %v", err)
	}
	if count != 1 {
		t.Errorf("ToggleVote() add count = %d, want 1", count)
	}

	count, err = svc.ToggleVote(ctx, i.ID, "james@example.com")
	if err != nil {
		t.Fatalf("ToggleVote() second voter: %v", err)
	}
	if count != 2 {
		t.Errorf("ToggleVote() second voter count = %d, want 2", count)
	}

	// same voter again withdraws; case of the address does not matter
	count, err = svc.ToggleVote(ctx, i.ID, "maria@example.com")
	if err != nil {
		t.Fatalf("ToggleVote() withdraw: %v", err)
	}
	if count != 1 {
		t.Errorf("ToggleVote() withdraw count = %d, want 1", count)
	}
}

func TestServiceList(t *testing.T) {
	svc := setup(t)

	popular, err := svc.Submit(ctx, newIdea("started a community fridge"))
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}
	quiet, err := svc.Submit(ctx, newIdea("organized a repair cafe"))
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}
	declined, err := svc.Submit(ctx, newIdea("rented a hot air balloon"))
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}
	if err = svc.SetStatus(ctx, declined.ID, idea.StatusDeclined); err != nil {
		t.Fatalf("SetStatus(): %v", err)
	}

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := svc.ToggleVote(ctx, popular.ID, email); err != nil {
			t.Fatalf("ToggleVote(): %v", err)
		}
	}

	ideas, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List(): %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("List() returned %d ideas, want 2 (declined hidden)", len(ideas))
	}
	if ideas[0].ID != popular.ID || ideas[0].Votes != 2 {
		t.Errorf("List()[0] = %+v, want the 2-vote idea first", ideas[0])
	}
	if ideas[1].ID != quiet.ID {
		t.Errorf("List()[1] = %+v, want the unvoted idea", ideas[1])
	}
}

func TestServiceSetStatus(t *testing.T) {
	svc := setup(t)

	i, err := svc.Submit(ctx, newIdea("started a tool library"))
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}

	tests := []struct {
		name    string
		id      string
		status  idea.Status
		wantErr error
	}{
		{"ok", i.ID, idea.StatusInPlanning, nil},
		{"unknown idea", "nope", idea.StatusApproved, idea.ErrNotFound},
		{"bad status", i.ID, idea.Status("brilliant"), idea.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.SetStatus(ctx, tt.id, tt.status); err != tt.wantErr {
				t.Errorf("SetStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	got, err := svc.Get(ctx, i.ID)
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}
	if got.Status != idea.StatusInPlanning {
		t.Errorf("Get() status = %v, want %v", got.Status, idea.StatusInPlanning)
	}
}

func TestServiceDelete(t *testing.T) {
	svc := setup(t)

	i, err := svc.Submit(ctx, newIdea("started a tool library"))
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}
	if _, err = svc.ToggleVote(ctx, i.ID, "maria@example.com"); err != nil {
		t.Fatalf("ToggleVote(): %v", err)
	}

	if err := svc.Delete(ctx, "nope"); err != idea.ErrNotFound {
		t.Errorf("Delete() unknown error = %v, wantErr %v", err, idea.ErrNotFound)
	}
	if err := svc.Delete(ctx, i.ID); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	if _, err := svc.Get(ctx, i.ID); err != idea.ErrNotFound {
		t.Errorf("Get() after Delete error = %v, wantErr %v", err, idea.ErrNotFound)
	}
}
