package repository

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/barkeep/shaker/internal/domain"
	"github.com/barkeep/shaker/internal/infrastructure/database/models"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

func (r *IngredientRepository) Get(ctx context.Context, id int64) (domain.Ingredient, error) {
	var model models.Ingredient
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.NotFoundError{Resource: "ingredient", IDs: []int64{id}}
		}
		return domain.Ingredient{}, domain.StorageError{Err: pkgerrors.Wrap(err, "IngredientRepository.Get")}
	}
	return ingredientToDomain(model), nil
}

func (r *IngredientRepository) GetMany(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	var found []models.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error
	if err != nil {
		return nil, domain.StorageError{Err: pkgerrors.Wrap(err, "IngredientRepository.GetMany")}
	}
	ingredients := make([]domain.Ingredient, len(found))
	for i, model := range found {
		ingredients[i] = ingredientToDomain(model)
	}
	return ingredients, nil
}

func (r *IngredientRepository) Create(ctx context.Context, ingredient domain.Ingredient) (domain.Ingredient, error) {
	model := models.Ingredient{
		Name:        ingredient.Name,
		Description: ingredient.Description,
		IsAlcoholic: ingredient.IsAlcoholic,
		Photo:       ingredient.Photo,
	}
	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		return domain.Ingredient{}, translateIngredientError(err, "IngredientRepository.Create")
	}
	return ingredientToDomain(model), nil
}

func (r *IngredientRepository) Update(ctx context.Context, ingredient domain.Ingredient) (domain.Ingredient, error) {
	err := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id = ?", ingredient.ID).
		Updates(map[string]any{
			"name":         ingredient.Name,
			"description":  ingredient.Description,
			"is_alcoholic": ingredient.IsAlcoholic,
			"photo":        ingredient.Photo,
		}).Error
	if err != nil {
		return domain.Ingredient{}, translateIngredientError(err, "IngredientRepository.Update")
	}
	return r.Get(ctx, ingredient.ID)
}

func (r *IngredientRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id)
	if result.Error != nil {
		return domain.StorageError{Err: pkgerrors.Wrap(result.Error, "IngredientRepository.Delete")}
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "ingredient", IDs: []int64{id}}
	}
	return nil
}

func (r *IngredientRepository) List(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error) {
	tx := r.db.WithContext(ctx).Model(&models.Ingredient{})
	if filter.IsAlcoholic != nil {
		tx = tx.Where("is_alcoholic = ?", *filter.IsAlcoholic)
	}

	column := "id"
	if filter.SortBy == domain.SortByName {
		column = "name"
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	tx = tx.Order(fmt.Sprintf("ingredients.%s %s", column, direction))

	var found []models.Ingredient
	if err := tx.Find(&found).Error; err != nil {
		return nil, domain.StorageError{Err: pkgerrors.Wrap(err, "IngredientRepository.List")}
	}
	ingredients := make([]domain.Ingredient, len(found))
	for i, model := range found {
		ingredients[i] = ingredientToDomain(model)
	}
	return ingredients, nil
}

func translateIngredientError(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Resource: "ingredient"}
	}
	return domain.StorageError{Err: pkgerrors.Wrap(err, op)}
}

func ingredientToDomain(model models.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		IsAlcoholic: model.IsAlcoholic,
		Photo:       model.Photo,
	}
}
