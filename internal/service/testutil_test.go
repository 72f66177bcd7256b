package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cookbookd/backend/internal/database"
	"github.com/cookbookd/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, category string) *models.Ingredient {
	ingredient := &models.Ingredient{Name: name, Category: category}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func testRecipe(author *models.User, title string) *models.Recipe {
	return &models.Recipe{
		Title:      title,
		Category:   "Meat",
		Difficulty: "Easy",
		CookTime:   30,
		Servings:   4,
		Image:      "/media/images/test.png",
		AuthorID:   author.ID,
	}
}
