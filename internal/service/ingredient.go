package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cookbookd/backend/internal/models"
)

// IngredientService handles the ingredient catalog. Deletion is guarded:
// an ingredient referenced by any recipe cannot be removed.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

func (s *IngredientService) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if ingredient.Name == "" || !models.ValidIngredientCategory(ingredient.Category) {
		return nil, ErrMalformedPayload
	}
	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *IngredientService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (s *IngredientService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) UpdateIngredient(ctx context.Context, id uint, updates *models.Ingredient) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	if updates.Category != "" && !models.ValidIngredientCategory(updates.Category) {
		return nil, ErrMalformedPayload
	}
	fields := map[string]interface{}{}
	if updates.Name != "" {
		fields["name"] = updates.Name
	}
	if updates.Category != "" {
		fields["category"] = updates.Category
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(ingredient).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return ingredient, nil
}

// DeleteIngredient removes an ingredient from the catalog. Fails with
// ErrIngredientInUse while any recipe still lists it.
func (s *IngredientService) DeleteIngredient(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIngredientInUse
		}

		return tx.Delete(&ingredient).Error
	})
}
