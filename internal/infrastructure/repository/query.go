package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/barkeep/shaker/internal/domain"
)

// sqlCondition is one compiled WHERE clause with its arguments.
type sqlCondition struct {
	expr string
	args []any
}

// compileCondition lowers the typed predicate tree into independent,
// conjoinable SQL clauses. Every ingredient condition is an EXISTS /
// NOT EXISTS subquery over the full link relation, so the outer query
// never joins the link table and each cocktail appears at most once
// regardless of how many links match.
func compileCondition(condition domain.Condition) ([]sqlCondition, error) {
	switch c := condition.(type) {
	case nil:
		return nil, nil
	case domain.And:
		var clauses []sqlCondition
		for _, child := range c.Conditions {
			compiled, err := compileCondition(child)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, compiled...)
		}
		return clauses, nil
	case domain.NameContains:
		return []sqlCondition{{
			expr: "cocktails.name LIKE ?",
			args: []any{"%" + escapeLike(c.Substring) + "%"},
		}}, nil
	case domain.CategoryEquals:
		return []sqlCondition{{
			expr: "cocktails.category = ?",
			args: []any{c.Category},
		}}, nil
	case domain.HasIngredient:
		return []sqlCondition{{
			expr: "EXISTS (SELECT 1 FROM cocktail_ingredients ci WHERE ci.cocktail_id = cocktails.id AND ci.ingredient_id = ?)",
			args: []any{c.IngredientID},
		}}, nil
	case domain.HasIngredients:
		if len(c.IngredientIDs) == 0 {
			return nil, nil
		}
		if c.Mode == domain.MatchAll {
			clauses := make([]sqlCondition, len(c.IngredientIDs))
			for i, id := range c.IngredientIDs {
				clauses[i] = sqlCondition{
					expr: "EXISTS (SELECT 1 FROM cocktail_ingredients ci WHERE ci.cocktail_id = cocktails.id AND ci.ingredient_id = ?)",
					args: []any{id},
				}
			}
			return clauses, nil
		}
		return []sqlCondition{{
			expr: "EXISTS (SELECT 1 FROM cocktail_ingredients ci WHERE ci.cocktail_id = cocktails.id AND ci.ingredient_id IN ?)",
			args: []any{c.IngredientIDs},
		}}, nil
	case domain.NoAlcoholicIngredient:
		return []sqlCondition{{
			expr: "NOT EXISTS (SELECT 1 FROM cocktail_ingredients ci JOIN ingredients i ON i.id = ci.ingredient_id WHERE ci.cocktail_id = cocktails.id AND i.is_alcoholic = ?)",
			args: []any{true},
		}}, nil
	default:
		return nil, fmt.Errorf("unsupported condition %T", condition)
	}
}

// compileOrder renders the full ORDER BY list. Ties after the explicit
// keys are broken by ascending id so pagination is deterministic.
func compileOrder(keys []domain.SortKey) string {
	if len(keys) == 0 {
		keys = domain.DefaultSort
	}
	parts := make([]string, 0, len(keys)+1)
	sortsByID := false
	for _, key := range keys {
		direction := "ASC"
		if key.Descending {
			direction = "DESC"
		}
		parts = append(parts, fmt.Sprintf("cocktails.%s %s", key.Field, direction))
		if key.Field == domain.SortByID {
			sortsByID = true
		}
	}
	if !sortsByID {
		parts = append(parts, "cocktails.id ASC")
	}
	return strings.Join(parts, ", ")
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

func applyQuery(tx *gorm.DB, query domain.CocktailQuery) (*gorm.DB, error) {
	clauses, err := compileCondition(query.Condition)
	if err != nil {
		return nil, domain.StorageError{Err: err}
	}
	for _, clause := range clauses {
		tx = tx.Where(clause.expr, clause.args...)
	}
	tx = tx.Order(compileOrder(query.Sort))
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}
	return tx, nil
}
