package usecase

import (
	"context"

	"github.com/barkeep/shaker/internal/domain"
)

type CreateIngredientInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	IsAlcoholic bool    `json:"isAlcoholic"`
	Photo       *string `json:"photo,omitempty"`
}

type UpdateIngredientInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsAlcoholic *bool   `json:"isAlcoholic"`
	Photo       *string `json:"photo"`
}

type IngredientUsecase struct {
	ingredients IngredientRepository
	events      EventPublisher
	names       NameIndex
}

func NewIngredientUsecase(ingredients IngredientRepository, events EventPublisher, names NameIndex) *IngredientUsecase {
	return &IngredientUsecase{ingredients: ingredients, events: events, names: names}
}

func (uc *IngredientUsecase) Create(ctx context.Context, input CreateIngredientInput) (domain.Ingredient, error) {
	ctx, span := tracer.Start(ctx, "Ingredient.Usecase.Create")
	defer span.End()

	if input.Name == "" {
		return domain.Ingredient{}, domain.ValidationError{Message: "name is required"}
	}
	if uc.names != nil && uc.names.Seen(ctx, "ingredient", input.Name) {
		return domain.Ingredient{}, domain.ConflictError{Resource: "ingredient"}
	}

	created, err := uc.ingredients.Create(ctx, domain.Ingredient{
		Name:        input.Name,
		Description: input.Description,
		IsAlcoholic: input.IsAlcoholic,
		Photo:       input.Photo,
	})
	if err != nil {
		span.RecordError(err)
		return domain.Ingredient{}, err
	}

	if uc.names != nil {
		uc.names.Remember(ctx, "ingredient", created.Name)
	}
	uc.publish(ctx, domain.Event{Type: domain.EventIngredientCreated, IngredientID: created.ID})
	return created, nil
}

func (uc *IngredientUsecase) Get(ctx context.Context, id int64) (domain.Ingredient, error) {
	return uc.ingredients.Get(ctx, id)
}

func (uc *IngredientUsecase) List(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error) {
	return uc.ingredients.List(ctx, filter)
}

func (uc *IngredientUsecase) Update(ctx context.Context, id int64, input UpdateIngredientInput) (domain.Ingredient, error) {
	ctx, span := tracer.Start(ctx, "Ingredient.Usecase.Update")
	defer span.End()

	current, err := uc.ingredients.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Ingredient{}, err
	}
	previousName := current.Name

	if input.Name != nil {
		if *input.Name == "" {
			return domain.Ingredient{}, domain.ValidationError{Message: "name must not be empty"}
		}
		current.Name = *input.Name
	}
	if input.Description != nil {
		current.Description = *input.Description
	}
	if input.IsAlcoholic != nil {
		current.IsAlcoholic = *input.IsAlcoholic
	}
	if input.Photo != nil {
		current.Photo = input.Photo
	}

	updated, err := uc.ingredients.Update(ctx, current)
	if err != nil {
		span.RecordError(err)
		return domain.Ingredient{}, err
	}

	if uc.names != nil && previousName != updated.Name {
		uc.names.Forget(ctx, "ingredient", previousName)
		uc.names.Remember(ctx, "ingredient", updated.Name)
	}
	uc.publish(ctx, domain.Event{Type: domain.EventIngredientUpdated, IngredientID: updated.ID})
	return updated, nil
}

// Delete removes the ingredient; the storage schema cascades the
// removal to every quantity link referencing it.
func (uc *IngredientUsecase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Ingredient.Usecase.Delete")
	defer span.End()

	current, err := uc.ingredients.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := uc.ingredients.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	if uc.names != nil {
		uc.names.Forget(ctx, "ingredient", current.Name)
	}
	uc.publish(ctx, domain.Event{Type: domain.EventIngredientDeleted, IngredientID: id})
	return nil
}

func (uc *IngredientUsecase) publish(ctx context.Context, event domain.Event) {
	if uc.events != nil {
		uc.events.Publish(ctx, event)
	}
}
