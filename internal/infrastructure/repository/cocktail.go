package repository

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/barkeep/shaker/internal/domain"
	"github.com/barkeep/shaker/internal/infrastructure/database/models"
)

type CocktailRepository struct {
	db *gorm.DB
}

func NewCocktailRepository(db *gorm.DB) *CocktailRepository {
	return &CocktailRepository{db: db}
}

func (r *CocktailRepository) Get(ctx context.Context, id int64) (domain.Cocktail, error) {
	var model models.Cocktail
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Cocktail{}, domain.NotFoundError{Resource: "cocktail", IDs: []int64{id}}
		}
		return domain.Cocktail{}, domain.StorageError{Err: pkgerrors.Wrap(err, "CocktailRepository.Get")}
	}
	return cocktailToDomain(model), nil
}

func (r *CocktailRepository) GetMany(ctx context.Context, ids []int64) ([]domain.Cocktail, error) {
	var found []models.Cocktail
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error
	if err != nil {
		return nil, domain.StorageError{Err: pkgerrors.Wrap(err, "CocktailRepository.GetMany")}
	}
	cocktails := make([]domain.Cocktail, len(found))
	for i, model := range found {
		cocktails[i] = cocktailToDomain(model)
	}
	return cocktails, nil
}

func (r *CocktailRepository) Create(ctx context.Context, cocktail domain.Cocktail, links []domain.QuantityLink) (domain.Cocktail, error) {
	model := models.Cocktail{
		Name:        cocktail.Name,
		Category:    cocktail.Category,
		Instruction: cocktail.Instruction,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		for _, link := range links {
			edge := models.CocktailIngredient{
				CocktailID:   model.ID,
				IngredientID: link.IngredientID,
				Quantity:     link.Quantity,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Cocktail{}, translateCocktailError(err, "CocktailRepository.Create")
	}

	return r.Get(ctx, model.ID)
}

// Update persists scalar changes and, when replaceLinks is set,
// reconciles the link set within the same transaction: links outside
// the desired set are removed, the rest are upserted so surviving pairs
// keep their row identity while their quantity is overwritten.
func (r *CocktailRepository) Update(ctx context.Context, cocktail domain.Cocktail, links []domain.QuantityLink, replaceLinks bool) (domain.Cocktail, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Cocktail{}).
			Where("id = ?", cocktail.ID).
			Updates(map[string]any{
				"name":        cocktail.Name,
				"category":    cocktail.Category,
				"instruction": cocktail.Instruction,
			}).Error
		if err != nil {
			return err
		}

		if !replaceLinks {
			return nil
		}

		keep := make([]int64, 0, len(links))
		for _, link := range links {
			keep = append(keep, link.IngredientID)
		}

		stale := tx.Where("cocktail_id = ?", cocktail.ID)
		if len(keep) > 0 {
			stale = stale.Where("ingredient_id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.CocktailIngredient{}).Error; err != nil {
			return err
		}

		for _, link := range links {
			edge := models.CocktailIngredient{
				CocktailID:   cocktail.ID,
				IngredientID: link.IngredientID,
				Quantity:     link.Quantity,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "cocktail_id"}, {Name: "ingredient_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
			}).Create(&edge).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Cocktail{}, translateCocktailError(err, "CocktailRepository.Update")
	}

	return r.Get(ctx, cocktail.ID)
}

func (r *CocktailRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Cocktail{}, "id = ?", id)
	if result.Error != nil {
		return domain.StorageError{Err: pkgerrors.Wrap(result.Error, "CocktailRepository.Delete")}
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "cocktail", IDs: []int64{id}}
	}
	return nil
}

func (r *CocktailRepository) AddLinkIfAbsent(ctx context.Context, cocktailID, ingredientID int64, quantity string) error {
	edge := models.CocktailIngredient{
		CocktailID:   cocktailID,
		IngredientID: ingredientID,
		Quantity:     quantity,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cocktail_id"}, {Name: "ingredient_id"}},
		DoNothing: true,
	}).Create(&edge).Error
	if err != nil {
		return domain.StorageError{Err: pkgerrors.Wrap(err, "CocktailRepository.AddLinkIfAbsent")}
	}
	return nil
}

func (r *CocktailRepository) UpsertQuantity(ctx context.Context, cocktailID, ingredientID int64, quantity string) error {
	edge := models.CocktailIngredient{
		CocktailID:   cocktailID,
		IngredientID: ingredientID,
		Quantity:     quantity,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cocktail_id"}, {Name: "ingredient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&edge).Error
	if err != nil {
		return domain.StorageError{Err: pkgerrors.Wrap(err, "CocktailRepository.UpsertQuantity")}
	}
	return nil
}

func (r *CocktailRepository) Search(ctx context.Context, query domain.CocktailQuery) ([]domain.Cocktail, error) {
	tx := r.db.WithContext(ctx).Model(&models.Cocktail{})
	tx, err := applyQuery(tx, query)
	if err != nil {
		return nil, err
	}

	var found []models.Cocktail
	if err := tx.Preload("Ingredients.Ingredient").Find(&found).Error; err != nil {
		return nil, domain.StorageError{Err: pkgerrors.Wrap(err, "CocktailRepository.Search")}
	}

	cocktails := make([]domain.Cocktail, len(found))
	for i, model := range found {
		cocktails[i] = cocktailToDomain(model)
	}
	return cocktails, nil
}

func translateCocktailError(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Resource: "cocktail"}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.NotFoundError{Resource: "ingredient"}
	}
	return domain.StorageError{Err: pkgerrors.Wrap(err, op)}
}

func cocktailToDomain(model models.Cocktail) domain.Cocktail {
	links := make([]domain.QuantityLink, len(model.Ingredients))
	for i, edge := range model.Ingredients {
		link := domain.QuantityLink{
			IngredientID: edge.IngredientID,
			Quantity:     edge.Quantity,
		}
		if edge.Ingredient.ID != 0 {
			ingredient := ingredientToDomain(edge.Ingredient)
			link.Ingredient = &ingredient
		}
		links[i] = link
	}
	return domain.Cocktail{
		ID:          model.ID,
		Name:        model.Name,
		Category:    model.Category,
		Instruction: model.Instruction,
		Ingredients: links,
	}
}
