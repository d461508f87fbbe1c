package repository

import (
	"reflect"
	"strings"
	"testing"

	"github.com/barkeep/shaker/internal/domain"
)

func TestCompileConditionNameContainsEscapesWildcards(t *testing.T) {
	clauses, err := compileCondition(domain.NameContains{Substring: "50%_a"})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	if clauses[0].expr != "cocktails.name LIKE ?" {
		t.Fatalf("unexpected expr %q", clauses[0].expr)
	}
	if clauses[0].args[0] != `%50\%\_a%` {
		t.Fatalf("unexpected arg %q", clauses[0].args[0])
	}
}

func TestCompileConditionAllModeEmitsOneExistsPerID(t *testing.T) {
	clauses, err := compileCondition(domain.HasIngredients{
		IngredientIDs: []int64{4, 7, 9},
		Mode:          domain.MatchAll,
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(clauses) != 3 {
		t.Fatalf("expected one existential clause per id, got %d", len(clauses))
	}
	for i, id := range []int64{4, 7, 9} {
		if !strings.HasPrefix(clauses[i].expr, "EXISTS (") {
			t.Fatalf("clause %d is not existential: %q", i, clauses[i].expr)
		}
		if clauses[i].args[0] != id {
			t.Fatalf("clause %d: expected arg %d got %v", i, id, clauses[i].args[0])
		}
	}
}

func TestCompileConditionAnyModeEmitsSingleInList(t *testing.T) {
	clauses, err := compileCondition(domain.HasIngredients{
		IngredientIDs: []int64{4, 7},
		Mode:          domain.MatchAny,
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	if !strings.Contains(clauses[0].expr, "ci.ingredient_id IN ?") {
		t.Fatalf("expected IN-list clause, got %q", clauses[0].expr)
	}
	if !reflect.DeepEqual(clauses[0].args[0], []int64{4, 7}) {
		t.Fatalf("unexpected args %v", clauses[0].args)
	}
}

func TestCompileConditionEmptyIDListIsNoFilter(t *testing.T) {
	clauses, err := compileCondition(domain.HasIngredients{Mode: domain.MatchAll})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(clauses) != 0 {
		t.Fatalf("expected no clauses for empty id list, got %d", len(clauses))
	}
}

func TestCompileConditionNoAlcoholicIsNegatedExistential(t *testing.T) {
	clauses, err := compileCondition(domain.NoAlcoholicIngredient{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	expr := clauses[0].expr
	if !strings.HasPrefix(expr, "NOT EXISTS (") {
		t.Fatalf("expected NOT EXISTS clause, got %q", expr)
	}
	if !strings.Contains(expr, "i.is_alcoholic = ?") {
		t.Fatalf("expected alcoholic flag predicate, got %q", expr)
	}
}

func TestCompileConditionAndFlattensChildren(t *testing.T) {
	clauses, err := compileCondition(domain.And{Conditions: []domain.Condition{
		domain.CategoryEquals{Category: "classic"},
		domain.HasIngredient{IngredientID: 2},
		domain.And{Conditions: []domain.Condition{
			domain.NameContains{Substring: "gin"},
		}},
	}})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(clauses) != 3 {
		t.Fatalf("expected 3 flattened clauses, got %d", len(clauses))
	}
}

func TestCompileOrderAppendsIDTiebreak(t *testing.T) {
	order := compileOrder([]domain.SortKey{
		{Field: domain.SortByName, Descending: true},
		{Field: domain.SortByCategory},
	})
	if order != "cocktails.name DESC, cocktails.category ASC, cocktails.id ASC" {
		t.Fatalf("unexpected order %q", order)
	}
}

func TestCompileOrderSkipsTiebreakWhenIDPresent(t *testing.T) {
	order := compileOrder([]domain.SortKey{{Field: domain.SortByID, Descending: true}})
	if order != "cocktails.id DESC" {
		t.Fatalf("unexpected order %q", order)
	}
}

func TestCompileOrderDefaultsToNameAscending(t *testing.T) {
	order := compileOrder(nil)
	if order != "cocktails.name ASC, cocktails.id ASC" {
		t.Fatalf("unexpected order %q", order)
	}
}
