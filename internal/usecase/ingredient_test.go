package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/barkeep/shaker/internal/domain"
)

type mockNameIndex struct {
	names map[string]bool
}

func newMockNameIndex(names ...string) *mockNameIndex {
	index := &mockNameIndex{names: map[string]bool{}}
	for _, name := range names {
		index.names[name] = true
	}
	return index
}

func (m *mockNameIndex) Seen(ctx context.Context, kind, name string) bool {
	return m.names[kind+"/"+name]
}

func (m *mockNameIndex) Remember(ctx context.Context, kind, name string) {
	m.names[kind+"/"+name] = true
}

func (m *mockNameIndex) Forget(ctx context.Context, kind, name string) {
	delete(m.names, kind+"/"+name)
}

func TestIngredientCreateRequiresName(t *testing.T) {
	repo := newMockIngredientRepo()
	uc := NewIngredientUsecase(repo, nil, nil)

	_, err := uc.Create(context.Background(), CreateIngredientInput{Description: "citrus"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("validation failure must not touch storage")
	}
}

func TestIngredientCreateFastPathConflict(t *testing.T) {
	repo := newMockIngredientRepo()
	names := newMockNameIndex("ingredient/Lime")
	uc := NewIngredientUsecase(repo, nil, names)

	_, err := uc.Create(context.Background(), CreateIngredientInput{Name: "Lime"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict from the fast path, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("fast-path conflict must not reach storage")
	}
}

func TestIngredientCreateRemembersName(t *testing.T) {
	repo := newMockIngredientRepo()
	names := newMockNameIndex()
	events := &mockPublisher{}
	uc := NewIngredientUsecase(repo, events, names)

	created, err := uc.Create(context.Background(), CreateIngredientInput{Name: "Lime", IsAlcoholic: false})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
	if !names.Seen(context.Background(), "ingredient", "Lime") {
		t.Fatalf("expected the name to be remembered")
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventIngredientCreated {
		t.Fatalf("expected a created event, got %v", events.events)
	}
}

func TestIngredientUpdateMergesPartialInput(t *testing.T) {
	repo := newMockIngredientRepo(domain.Ingredient{ID: 3, Name: "Lime", Description: "citrus"})
	uc := NewIngredientUsecase(repo, nil, nil)

	flag := true
	updated, err := uc.Update(context.Background(), 3, UpdateIngredientInput{IsAlcoholic: &flag})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Lime" || updated.Description != "citrus" {
		t.Fatalf("untouched fields must survive, got %+v", updated)
	}
	if !updated.IsAlcoholic {
		t.Fatalf("expected the flag to be updated")
	}
}

func TestIngredientUpdateRenameRefreshesNameIndex(t *testing.T) {
	repo := newMockIngredientRepo(domain.Ingredient{ID: 3, Name: "Lime"})
	names := newMockNameIndex("ingredient/Lime")
	uc := NewIngredientUsecase(repo, nil, names)

	name := "Key Lime"
	_, err := uc.Update(context.Background(), 3, UpdateIngredientInput{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if names.Seen(context.Background(), "ingredient", "Lime") {
		t.Fatalf("expected the old name to be forgotten")
	}
	if !names.Seen(context.Background(), "ingredient", "Key Lime") {
		t.Fatalf("expected the new name to be remembered")
	}
}

func TestIngredientDeleteMissing(t *testing.T) {
	uc := NewIngredientUsecase(newMockIngredientRepo(), nil, nil)

	err := uc.Delete(context.Background(), 404)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIngredientDeleteForgetsName(t *testing.T) {
	repo := newMockIngredientRepo(domain.Ingredient{ID: 3, Name: "Lime"})
	names := newMockNameIndex("ingredient/Lime")
	events := &mockPublisher{}
	uc := NewIngredientUsecase(repo, events, names)

	if err := uc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if names.Seen(context.Background(), "ingredient", "Lime") {
		t.Fatalf("expected the name to be forgotten")
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventIngredientDeleted {
		t.Fatalf("expected a deleted event, got %v", events.events)
	}
}
