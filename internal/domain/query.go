package domain

import "strings"

// MatchMode selects the semantics of a multi-ingredient filter.
type MatchMode string

const (
	MatchAny MatchMode = "any"
	MatchAll MatchMode = "all"
)

// Condition is one node of the typed predicate tree the query engine
// compiles instead of assembling SQL strings per request.
type Condition interface {
	isCondition()
}

// NameContains matches cocktails whose name contains the substring.
// Matching is case-sensitive (storage LIKE with wildcards on both sides).
type NameContains struct {
	Substring string
}

// CategoryEquals matches cocktails with exactly this category.
type CategoryEquals struct {
	Category string
}

// HasIngredient matches cocktails with at least one link to the
// ingredient.
type HasIngredient struct {
	IngredientID int64
}

// HasIngredients matches cocktails linked to the listed ingredients
// under MatchAny or MatchAll semantics. MatchAll is evaluated as one
// existential sub-condition per id, since an IN-list cannot express
// "all".
type HasIngredients struct {
	IngredientIDs []int64
	Mode          MatchMode
}

// NoAlcoholicIngredient matches cocktails with no link to any alcoholic
// ingredient. It is evaluated over the full link relation, independent
// of any other ingredient filter.
type NoAlcoholicIngredient struct{}

// And conjoins all child conditions.
type And struct {
	Conditions []Condition
}

func (NameContains) isCondition()          {}
func (CategoryEquals) isCondition()        {}
func (HasIngredient) isCondition()         {}
func (HasIngredients) isCondition()        {}
func (NoAlcoholicIngredient) isCondition() {}
func (And) isCondition()                   {}

// SortField is one of the allow-listed cocktail sort keys.
type SortField string

const (
	SortByName     SortField = "name"
	SortByCategory SortField = "category"
	SortByID       SortField = "id"
)

// SortKey is one element of a multi-key ordering.
type SortKey struct {
	Field      SortField
	Descending bool
}

// DefaultSort is the ordering applied when the request names no
// recognized sort key.
var DefaultSort = []SortKey{{Field: SortByName}}

// ParseSortKeys parses a comma-separated sort expression ("-name,category").
// Unrecognized keys are skipped; an expression with no recognized key
// falls back to DefaultSort.
func ParseSortKeys(expr string) []SortKey {
	var keys []SortKey
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		descending := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")
		switch SortField(part) {
		case SortByName, SortByCategory, SortByID:
			keys = append(keys, SortKey{Field: SortField(part), Descending: descending})
		}
	}
	if len(keys) == 0 {
		return DefaultSort
	}
	return keys
}

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// CocktailFilter is the raw, optional-field search request as received
// from a caller.
type CocktailFilter struct {
	Name          string
	Category      string
	IngredientID  int64
	IngredientIDs []int64
	Mode          string
	AlcoholFree   bool
	Sort          string
	Page          int
	Limit         int
}

// CocktailQuery is the compiled form: one conjoined predicate, a full
// ordering and an absolute window.
type CocktailQuery struct {
	Condition Condition
	Sort      []SortKey
	Offset    int
	Limit     int
}

// Compile builds the predicate tree and normalizes sort and pagination.
// An empty ingredient id list contributes no condition, a mode outside
// {any, all} defaults to any, and the limit is clamped to [1, MaxLimit]
// with DefaultLimit when unset. Pagination offsets apply only when both
// page and limit are supplied.
func (f CocktailFilter) Compile() CocktailQuery {
	var conditions []Condition
	if f.Name != "" {
		conditions = append(conditions, NameContains{Substring: f.Name})
	}
	if f.Category != "" {
		conditions = append(conditions, CategoryEquals{Category: f.Category})
	}
	if f.IngredientID > 0 {
		conditions = append(conditions, HasIngredient{IngredientID: f.IngredientID})
	}
	if len(f.IngredientIDs) > 0 {
		mode := MatchMode(f.Mode)
		if mode != MatchAll {
			mode = MatchAny
		}
		conditions = append(conditions, HasIngredients{IngredientIDs: f.IngredientIDs, Mode: mode})
	}
	if f.AlcoholFree {
		conditions = append(conditions, NoAlcoholicIngredient{})
	}

	limit := f.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := 0
	if f.Page > 1 && f.Limit > 0 {
		offset = (f.Page - 1) * limit
	}

	return CocktailQuery{
		Condition: And{Conditions: conditions},
		Sort:      ParseSortKeys(f.Sort),
		Offset:    offset,
		Limit:     limit,
	}
}

// IngredientFilter narrows and orders the ingredient list endpoint.
type IngredientFilter struct {
	IsAlcoholic *bool
	SortBy      SortField
	Descending  bool
}
