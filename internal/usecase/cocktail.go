package usecase

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"

	"github.com/barkeep/shaker/internal/domain"
)

var tracer = otel.Tracer("usecase")

// IngredientRef names one desired link: either an existing ingredient
// by id, or an inline specification of a new one to create first.
type IngredientRef struct {
	IngredientID int64          `json:"ingredientId,omitempty"`
	Quantity     string         `json:"quantity"`
	New          *NewIngredient `json:"new,omitempty"`
}

// NewIngredient is an inline ingredient specification inside a link
// request. Name and IsAlcoholic are required.
type NewIngredient struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	IsAlcoholic *bool   `json:"isAlcoholic"`
	Photo       *string `json:"photo,omitempty"`
}

type CreateCocktailInput struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Instruction string          `json:"instruction"`
	Ingredients []IngredientRef `json:"ingredients"`
}

// UpdateCocktailInput carries partial scalar changes. A nil Ingredients
// slice leaves the link set untouched; a non-nil slice (including an
// empty one) replaces it entirely.
type UpdateCocktailInput struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Instruction *string          `json:"instruction"`
	Ingredients *[]IngredientRef `json:"ingredients"`
}

type CocktailUsecase struct {
	cocktails   CocktailRepository
	ingredients IngredientRepository
	events      EventPublisher
	names       NameIndex
}

func NewCocktailUsecase(
	cocktails CocktailRepository,
	ingredients IngredientRepository,
	events EventPublisher,
	names NameIndex,
) *CocktailUsecase {
	return &CocktailUsecase{
		cocktails:   cocktails,
		ingredients: ingredients,
		events:      events,
		names:       names,
	}
}

// resolveLinks validates every reference and turns it into a concrete
// link set. Inline ingredients are validated before anything is
// created, and every missing existing id is collected into a single
// NotFoundError so nothing has been written when the caller aborts.
func (uc *CocktailUsecase) resolveLinks(ctx context.Context, refs []IngredientRef) ([]domain.QuantityLink, error) {
	var existingIDs []int64
	for _, ref := range refs {
		if ref.New != nil {
			if ref.New.Name == "" {
				return nil, domain.ValidationError{Message: "ingredient name is required"}
			}
			if ref.New.IsAlcoholic == nil {
				return nil, domain.ValidationError{Message: "ingredient isAlcoholic is required"}
			}
			continue
		}
		if ref.IngredientID <= 0 {
			return nil, domain.ValidationError{Message: "ingredientId must be a positive integer"}
		}
		existingIDs = append(existingIDs, ref.IngredientID)
	}

	if err := uc.requireIngredients(ctx, existingIDs); err != nil {
		return nil, err
	}

	links := make([]domain.QuantityLink, 0, len(refs))
	seen := make(map[int64]bool, len(refs))
	for _, ref := range refs {
		id := ref.IngredientID
		if ref.New != nil {
			created, err := uc.ingredients.Create(ctx, domain.Ingredient{
				Name:        ref.New.Name,
				Description: ref.New.Description,
				IsAlcoholic: *ref.New.IsAlcoholic,
				Photo:       ref.New.Photo,
			})
			if err != nil {
				return nil, err
			}
			if uc.names != nil {
				uc.names.Remember(ctx, "ingredient", created.Name)
			}
			id = created.ID
		}
		// Last reference wins when the request repeats an ingredient,
		// keeping the desired set free of duplicate pairs.
		if seen[id] {
			for i := range links {
				if links[i].IngredientID == id {
					links[i].Quantity = ref.Quantity
				}
			}
			continue
		}
		seen[id] = true
		links = append(links, domain.QuantityLink{IngredientID: id, Quantity: ref.Quantity})
	}
	return links, nil
}

// requireIngredients resolves ids as a batch and reports the whole
// missing set.
func (uc *CocktailUsecase) requireIngredients(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := uc.ingredients.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	foundSet := make(map[int64]bool, len(found))
	for _, ing := range found {
		foundSet[ing.ID] = true
	}
	var missing []int64
	for _, id := range ids {
		if !foundSet[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return domain.NotFoundError{Resource: "ingredient", IDs: dedupIDs(missing)}
	}
	return nil
}

func dedupIDs(ids []int64) []int64 {
	out := ids[:0]
	var prev int64 = -1
	for _, id := range ids {
		if id != prev {
			out = append(out, id)
		}
		prev = id
	}
	return out
}

func (uc *CocktailUsecase) Create(ctx context.Context, input CreateCocktailInput) (domain.Cocktail, error) {
	ctx, span := tracer.Start(ctx, "Cocktail.Usecase.Create")
	defer span.End()

	if input.Name == "" {
		return domain.Cocktail{}, domain.ValidationError{Message: "name is required"}
	}
	if input.Category == "" {
		return domain.Cocktail{}, domain.ValidationError{Message: "category is required"}
	}
	if uc.names != nil && uc.names.Seen(ctx, "cocktail", input.Name) {
		return domain.Cocktail{}, domain.ConflictError{Resource: "cocktail"}
	}

	links, err := uc.resolveLinks(ctx, input.Ingredients)
	if err != nil {
		span.RecordError(err)
		return domain.Cocktail{}, err
	}

	created, err := uc.cocktails.Create(ctx, domain.Cocktail{
		Name:        input.Name,
		Category:    input.Category,
		Instruction: input.Instruction,
	}, links)
	if err != nil {
		span.RecordError(err)
		return domain.Cocktail{}, err
	}

	if uc.names != nil {
		uc.names.Remember(ctx, "cocktail", created.Name)
	}
	uc.publish(ctx, domain.Event{Type: domain.EventCocktailCreated, CocktailID: created.ID})
	return created, nil
}

func (uc *CocktailUsecase) Get(ctx context.Context, id int64) (domain.Cocktail, error) {
	return uc.cocktails.Get(ctx, id)
}

func (uc *CocktailUsecase) Search(ctx context.Context, filter domain.CocktailFilter) ([]domain.Cocktail, error) {
	ctx, span := tracer.Start(ctx, "Cocktail.Usecase.Search")
	defer span.End()

	return uc.cocktails.Search(ctx, filter.Compile())
}

// Update applies partial scalar changes and, when the request carries
// an ingredients list, reconciles the link set to exactly that list.
func (uc *CocktailUsecase) Update(ctx context.Context, id int64, input UpdateCocktailInput) (domain.Cocktail, error) {
	ctx, span := tracer.Start(ctx, "Cocktail.Usecase.Update")
	defer span.End()

	current, err := uc.cocktails.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Cocktail{}, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return domain.Cocktail{}, domain.ValidationError{Message: "name must not be empty"}
		}
		current.Name = *input.Name
	}
	if input.Category != nil {
		if *input.Category == "" {
			return domain.Cocktail{}, domain.ValidationError{Message: "category must not be empty"}
		}
		current.Category = *input.Category
	}
	if input.Instruction != nil {
		current.Instruction = *input.Instruction
	}

	var links []domain.QuantityLink
	if input.Ingredients != nil {
		links, err = uc.resolveLinks(ctx, *input.Ingredients)
		if err != nil {
			span.RecordError(err)
			return domain.Cocktail{}, err
		}
	}

	updated, err := uc.cocktails.Update(ctx, current, links, input.Ingredients != nil)
	if err != nil {
		span.RecordError(err)
		return domain.Cocktail{}, err
	}

	uc.publish(ctx, domain.Event{Type: domain.EventCocktailUpdated, CocktailID: updated.ID})
	return updated, nil
}

func (uc *CocktailUsecase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Cocktail.Usecase.Delete")
	defer span.End()

	current, err := uc.cocktails.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.cocktails.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	if uc.names != nil {
		uc.names.Forget(ctx, "cocktail", current.Name)
	}
	uc.publish(ctx, domain.Event{Type: domain.EventCocktailDeleted, CocktailID: id})
	return nil
}

// AddIngredientToCocktails attaches one ingredient to every listed
// cocktail, skipping pairs that are already linked. The returned slice
// lists every cocktail the attach was attempted on.
func (uc *CocktailUsecase) AddIngredientToCocktails(ctx context.Context, ingredientID int64, cocktailIDs []int64) ([]int64, error) {
	ctx, span := tracer.Start(ctx, "Cocktail.Usecase.AddIngredientToCocktails")
	defer span.End()

	if len(cocktailIDs) == 0 {
		return nil, domain.ValidationError{Message: "cocktailIds must not be empty"}
	}

	if _, err := uc.ingredients.Get(ctx, ingredientID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	found, err := uc.cocktails.GetMany(ctx, cocktailIDs)
	if err != nil {
		return nil, err
	}
	foundSet := make(map[int64]bool, len(found))
	for _, c := range found {
		foundSet[c.ID] = true
	}
	var missing []int64
	for _, id := range cocktailIDs {
		if !foundSet[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		err := domain.NotFoundError{Resource: "cocktail", IDs: dedupIDs(missing)}
		span.RecordError(err)
		return nil, err
	}

	// New links start with an empty quantity; callers assign one later
	// through SetQuantity.
	attempted := make([]int64, 0, len(cocktailIDs))
	for _, id := range cocktailIDs {
		if err := uc.cocktails.AddLinkIfAbsent(ctx, id, ingredientID, ""); err != nil {
			span.RecordError(err)
			return nil, err
		}
		attempted = append(attempted, id)
	}

	uc.publish(ctx, domain.Event{Type: domain.EventLinksChanged, IngredientID: ingredientID})
	return attempted, nil
}

// SetQuantity mutates one link's quantity, creating the link when it
// does not exist. It never reads or rewrites the rest of the
// cocktail's link set.
func (uc *CocktailUsecase) SetQuantity(ctx context.Context, cocktailID, ingredientID int64, quantity string) error {
	ctx, span := tracer.Start(ctx, "Cocktail.Usecase.SetQuantity")
	defer span.End()

	// Existence checks go through the batch lookup, which does not load
	// the cocktail's link set.
	found, err := uc.cocktails.GetMany(ctx, []int64{cocktailID})
	if err != nil {
		return err
	}
	if len(found) == 0 {
		err := domain.NotFoundError{Resource: "cocktail", IDs: []int64{cocktailID}}
		span.RecordError(err)
		return err
	}
	if _, err := uc.ingredients.Get(ctx, ingredientID); err != nil {
		span.RecordError(err)
		return err
	}

	if err := uc.cocktails.UpsertQuantity(ctx, cocktailID, ingredientID, quantity); err != nil {
		span.RecordError(err)
		return err
	}

	uc.publish(ctx, domain.Event{Type: domain.EventLinksChanged, CocktailID: cocktailID, IngredientID: ingredientID})
	return nil
}

func (uc *CocktailUsecase) publish(ctx context.Context, event domain.Event) {
	if uc.events != nil {
		uc.events.Publish(ctx, event)
	}
}
