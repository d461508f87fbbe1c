package domain

// Cocktail is a catalog item owning an attributed set of ingredient links.
type Cocktail struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Instruction string         `json:"instruction"`
	Ingredients []QuantityLink `json:"ingredients"`
}

// Ingredient is a catalog component referenced by cocktails through
// quantity links. It does not own its links; deleting an ingredient
// cascades to every link referencing it.
type Ingredient struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	IsAlcoholic bool    `json:"isAlcoholic"`
	Photo       *string `json:"photo,omitempty"`
}

// QuantityLink is one cocktail-ingredient edge carrying its quantity
// payload. At most one link exists per (cocktail, ingredient) pair.
type QuantityLink struct {
	IngredientID int64       `json:"ingredientId"`
	Quantity     string      `json:"quantity"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
}

// Event is a catalog mutation notification published over the signal
// channel.
type Event struct {
	Type         string `json:"type"`
	CocktailID   int64  `json:"cocktailId,omitempty"`
	IngredientID int64  `json:"ingredientId,omitempty"`
}

const (
	EventCocktailCreated   = "cocktail.created"
	EventCocktailUpdated   = "cocktail.updated"
	EventCocktailDeleted   = "cocktail.deleted"
	EventIngredientCreated = "ingredient.created"
	EventIngredientUpdated = "ingredient.updated"
	EventIngredientDeleted = "ingredient.deleted"
	EventLinksChanged      = "cocktail.links.changed"
)
