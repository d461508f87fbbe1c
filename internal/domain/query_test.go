package domain

import (
	"reflect"
	"testing"
)

func TestParseSortKeysDescendingAndUnknown(t *testing.T) {
	keys := ParseSortKeys("-name,rating,category")

	expected := []SortKey{
		{Field: SortByName, Descending: true},
		{Field: SortByCategory},
	}
	if !reflect.DeepEqual(keys, expected) {
		t.Fatalf("expected %v got %v", expected, keys)
	}
}

func TestParseSortKeysFallsBackToDefault(t *testing.T) {
	for _, expr := range []string{"", "rating,-popularity", " , "} {
		keys := ParseSortKeys(expr)
		if !reflect.DeepEqual(keys, DefaultSort) {
			t.Fatalf("expected default sort for %q, got %v", expr, keys)
		}
	}
}

func TestCompileBuildsConjoinedConditions(t *testing.T) {
	filter := CocktailFilter{
		Name:          "sour",
		Category:      "classic",
		IngredientID:  3,
		IngredientIDs: []int64{1, 2},
		Mode:          "all",
		AlcoholFree:   true,
	}

	query := filter.Compile()

	and, ok := query.Condition.(And)
	if !ok {
		t.Fatalf("expected And root, got %T", query.Condition)
	}
	if len(and.Conditions) != 5 {
		t.Fatalf("expected 5 conditions, got %d", len(and.Conditions))
	}
	multi, ok := and.Conditions[3].(HasIngredients)
	if !ok {
		t.Fatalf("expected HasIngredients at index 3, got %T", and.Conditions[3])
	}
	if multi.Mode != MatchAll {
		t.Fatalf("expected all mode, got %s", multi.Mode)
	}
}

func TestCompileEmptyFilterHasNoConditions(t *testing.T) {
	query := CocktailFilter{}.Compile()

	and := query.Condition.(And)
	if len(and.Conditions) != 0 {
		t.Fatalf("expected no conditions, got %d", len(and.Conditions))
	}
	if query.Limit != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, query.Limit)
	}
	if query.Offset != 0 {
		t.Fatalf("expected zero offset, got %d", query.Offset)
	}
	if !reflect.DeepEqual(query.Sort, DefaultSort) {
		t.Fatalf("expected default sort, got %v", query.Sort)
	}
}

func TestCompileUnknownModeDefaultsToAny(t *testing.T) {
	query := CocktailFilter{IngredientIDs: []int64{1}, Mode: "some"}.Compile()

	and := query.Condition.(And)
	multi := and.Conditions[0].(HasIngredients)
	if multi.Mode != MatchAny {
		t.Fatalf("expected any mode for unrecognized input, got %s", multi.Mode)
	}
}

func TestCompileClampsLimit(t *testing.T) {
	cases := []struct {
		limit    int
		expected int
	}{
		{limit: 0, expected: DefaultLimit},
		{limit: -3, expected: DefaultLimit},
		{limit: 1, expected: 1},
		{limit: 100, expected: 100},
		{limit: 500, expected: MaxLimit},
	}
	for _, tc := range cases {
		query := CocktailFilter{Limit: tc.limit}.Compile()
		if query.Limit != tc.expected {
			t.Fatalf("limit %d: expected %d got %d", tc.limit, tc.expected, query.Limit)
		}
	}
}

func TestCompileOffsetRequiresPageAndLimit(t *testing.T) {
	query := CocktailFilter{Page: 3, Limit: 10}.Compile()
	if query.Offset != 20 {
		t.Fatalf("expected offset 20, got %d", query.Offset)
	}

	// Page without a limit applies no offset.
	query = CocktailFilter{Page: 3}.Compile()
	if query.Offset != 0 {
		t.Fatalf("expected zero offset without limit, got %d", query.Offset)
	}

	query = CocktailFilter{Page: 1, Limit: 10}.Compile()
	if query.Offset != 0 {
		t.Fatalf("expected zero offset for first page, got %d", query.Offset)
	}
}
