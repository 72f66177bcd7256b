package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cookbookd/backend/internal/models"
)

// RecipeIngredientService backs the standalone /recipe_ingredient REST
// resource for direct access to join rows.
type RecipeIngredientService struct {
	db *gorm.DB
}

func NewRecipeIngredientService(db *gorm.DB) *RecipeIngredientService {
	return &RecipeIngredientService{db: db}
}

func (s *RecipeIngredientService) Create(ctx context.Context, record *models.RecipeIngredient) (*models.RecipeIngredient, error) {
	if !models.ValidAmountPrefix(record.Prefix) || record.Amount < 1 {
		return nil, ErrMalformedPayload
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", record.RecipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", record.IngredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Where("recipe_id = ? AND ingredient_id = ?", record.RecipeID, record.IngredientID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateIngredient
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	record.Ingredient = ingredient
	return record, nil
}

func (s *RecipeIngredientService) Get(ctx context.Context, id uint) (*models.RecipeIngredient, error) {
	var record models.RecipeIngredient
	err := s.db.WithContext(ctx).Preload("Ingredient").First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RecipeIngredientService) List(ctx context.Context) ([]models.RecipeIngredient, error) {
	var records []models.RecipeIngredient
	if err := s.db.WithContext(ctx).Preload("Ingredient").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *RecipeIngredientService) Update(ctx context.Context, id uint, amount uint, prefix string) (*models.RecipeIngredient, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount < 1 || !models.ValidAmountPrefix(prefix) {
		return nil, ErrMalformedPayload
	}
	updates := map[string]interface{}{"amount": amount, "prefix": prefix}
	if err := s.db.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecipeIngredientService) Delete(ctx context.Context, id uint) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(record).Error
}
