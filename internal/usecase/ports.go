package usecase

import (
	"context"

	"github.com/barkeep/shaker/internal/domain"
)

// CocktailRepository defines the storage collaborator for cocktails and
// their quantity links.
type CocktailRepository interface {
	Get(ctx context.Context, id int64) (domain.Cocktail, error)
	// GetMany returns the cocktails that exist; the caller computes the
	// missing subset.
	GetMany(ctx context.Context, ids []int64) ([]domain.Cocktail, error)
	Create(ctx context.Context, cocktail domain.Cocktail, links []domain.QuantityLink) (domain.Cocktail, error)
	// Update persists scalar changes and, when replaceLinks is set,
	// atomically reconciles the cocktail's link set to exactly links.
	Update(ctx context.Context, cocktail domain.Cocktail, links []domain.QuantityLink, replaceLinks bool) (domain.Cocktail, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query domain.CocktailQuery) ([]domain.Cocktail, error)
	// AddLinkIfAbsent inserts a single link, leaving an existing link
	// and its quantity untouched.
	AddLinkIfAbsent(ctx context.Context, cocktailID, ingredientID int64, quantity string) error
	// UpsertQuantity atomically sets one link's quantity, creating the
	// link when absent, without touching the rest of the set.
	UpsertQuantity(ctx context.Context, cocktailID, ingredientID int64, quantity string) error
}

// IngredientRepository defines the storage collaborator for ingredients.
type IngredientRepository interface {
	Get(ctx context.Context, id int64) (domain.Ingredient, error)
	GetMany(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
	Create(ctx context.Context, ingredient domain.Ingredient) (domain.Ingredient, error)
	Update(ctx context.Context, ingredient domain.Ingredient) (domain.Ingredient, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error)
}

// EventPublisher broadcasts catalog mutations. Delivery is best-effort
// and must not fail the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// NameIndex is a non-authoritative fast path for name-uniqueness
// checks. The storage constraint remains the single source of truth.
type NameIndex interface {
	Seen(ctx context.Context, kind, name string) bool
	Remember(ctx context.Context, kind, name string)
	Forget(ctx context.Context, kind, name string)
}
