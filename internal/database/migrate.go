package database

import (
	"gorm.io/gorm"

	"github.com/cookbookd/backend/internal/models"
)

// RunMigrations brings the schema up to date for all models.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Instruction{},
		&models.Rating{},
	)
}
