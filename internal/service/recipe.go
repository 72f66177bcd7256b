package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cookbookd/backend/internal/models"
	"github.com/cookbookd/backend/internal/validator"
)

// IngredientEntry is one element of the ingredients collection submitted with
// a recipe create or update: a reference to an ingredient row plus the amount
// used by this recipe.
type IngredientEntry struct {
	ID     uint   `json:"id" validate:"required"`
	Amount uint   `json:"amount" validate:"required,min=1"`
	Prefix string `json:"prefix"`
}

// InstructionEntry is one element of the instructions collection. Steps are
// 1-based; a zero step number is treated as missing, same as empty data.
type InstructionEntry struct {
	StepNumber uint   `json:"step_number"`
	Data       string `json:"data"`
}

// RecipeService owns the recipe write path: creation, the ingredient and
// instruction reconciliation on update, and the rating upsert. All mutations
// run inside a single transaction so a per-item failure rolls the whole
// request back.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// GetRecipe retrieves a recipe by ID with its ingredient and instruction
// rows preloaded.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns all recipes, most recently created first.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Preload("Author").
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// CreateRecipe creates the recipe row plus one RecipeIngredient row per
// ingredient entry and one Instruction row per instruction entry, all or
// nothing. Repeated ingredient ids in the same submission are rejected.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe, ingredients []IngredientEntry, instructions []InstructionEntry) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		seen := make(map[uint]bool, len(ingredients))
		for _, entry := range ingredients {
			if err := validator.Struct(entry); err != nil || !models.ValidAmountPrefix(entry.Prefix) {
				return ErrMalformedPayload
			}
			if seen[entry.ID] {
				return ErrDuplicateIngredient
			}
			seen[entry.ID] = true

			var ingredient models.Ingredient
			if err := tx.First(&ingredient, "id = ?", entry.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrIngredientNotFound
				}
				return err
			}

			record := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Amount:       entry.Amount,
				Prefix:       entry.Prefix,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		seenSteps := make(map[uint]bool, len(instructions))
		for _, entry := range instructions {
			if entry.Data == "" || entry.StepNumber == 0 {
				return ErrMissingInstructionData
			}
			if seenSteps[entry.StepNumber] {
				return ErrMalformedPayload
			}
			seenSteps[entry.StepNumber] = true
			record := models.Instruction{
				RecipeID:   recipe.ID,
				StepNumber: entry.StepNumber,
				Data:       entry.Data,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe reconciles a recipe's dependent rows against a full
// replacement snapshot of its ingredient and instruction collections.
//
// Ingredients are diffed by ingredient id: rows whose ingredient no longer
// appears in the submission are deleted, existing rows get their amount and
// prefix updated in place, and new ids get fresh rows. Instructions are
// upserted by step number and steps absent from the submission are deleted.
// An optional new image path replaces the stored one.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, image string, ingredients []IngredientEntry, instructions []InstructionEntry) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		if image != "" {
			if err := tx.Model(&recipe).Update("image", image).Error; err != nil {
				return err
			}
		}

		submitted := make(map[uint]IngredientEntry, len(ingredients))
		for _, entry := range ingredients {
			if err := validator.Struct(entry); err != nil || !models.ValidAmountPrefix(entry.Prefix) {
				return ErrMalformedPayload
			}
			submitted[entry.ID] = entry
		}

		var existing []models.RecipeIngredient
		if err := tx.Where("recipe_id = ?", recipe.ID).Find(&existing).Error; err != nil {
			return err
		}

		current := make(map[uint]models.RecipeIngredient, len(existing))
		for _, record := range existing {
			if _, ok := submitted[record.IngredientID]; !ok {
				if err := tx.Delete(&record).Error; err != nil {
					return err
				}
				continue
			}
			current[record.IngredientID] = record
		}

		for _, entry := range ingredients {
			var ingredient models.Ingredient
			if err := tx.First(&ingredient, "id = ?", entry.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrIngredientNotFound
				}
				return err
			}

			if record, ok := current[entry.ID]; ok {
				if record.Amount == entry.Amount && record.Prefix == entry.Prefix {
					continue
				}
				updates := map[string]interface{}{"amount": entry.Amount, "prefix": entry.Prefix}
				if err := tx.Model(&record).Updates(updates).Error; err != nil {
					return err
				}
				continue
			}

			record := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Amount:       entry.Amount,
				Prefix:       entry.Prefix,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		steps := make([]uint, 0, len(instructions))
		for _, entry := range instructions {
			if entry.Data == "" || entry.StepNumber == 0 {
				return ErrMissingInstructionData
			}
			steps = append(steps, entry.StepNumber)

			var record models.Instruction
			err := tx.Where("recipe_id = ? AND step_number = ?", recipe.ID, entry.StepNumber).First(&record).Error
			switch {
			case err == nil:
				if record.Data != entry.Data {
					if err := tx.Model(&record).Update("data", entry.Data).Error; err != nil {
						return err
					}
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				record = models.Instruction{
					RecipeID:   recipe.ID,
					StepNumber: entry.StepNumber,
					Data:       entry.Data,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		// Steps dropped from the submission are removed so the stored
		// sequence always mirrors the latest snapshot.
		query := tx.Where("recipe_id = ?", recipe.ID)
		if len(steps) > 0 {
			query = query.Where("step_number NOT IN ?", steps)
		}
		if err := query.Delete(&models.Instruction{}).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe. Dependent ingredient, instruction and
// rating rows go with it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Instruction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// RateRecipe records stars for (recipe, user), overwriting any previous
// rating. The insert carries an ON CONFLICT DO UPDATE clause against the
// composite unique index so two concurrent first ratings cannot produce
// duplicate rows. Returns the stored rating and whether it was newly created.
func (s *RecipeService) RateRecipe(ctx context.Context, recipeID, userID uint, stars int) (*models.Rating, bool, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrRecipeNotFound
		}
		return nil, false, err
	}

	result := s.db.WithContext(ctx).Model(&models.Rating{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Update("stars", stars)
	if result.Error != nil {
		return nil, false, result.Error
	}

	created := false
	if result.RowsAffected == 0 {
		rating := models.Rating{RecipeID: recipeID, UserID: userID, Stars: stars}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stars"}),
		}).Create(&rating).Error
		if err != nil {
			return nil, false, err
		}
		created = true
	}

	var rating models.Rating
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&rating).Error
	if err != nil {
		return nil, false, err
	}
	return &rating, created, nil
}
