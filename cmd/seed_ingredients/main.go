package main

import (
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/cookbookd/backend/config"
	"github.com/cookbookd/backend/internal/database"
	"github.com/cookbookd/backend/internal/models"
)

// A starter catalog so a fresh install has ingredients to attach to recipes.
var seedIngredients = []models.Ingredient{
	{Name: "Carrot", Category: "Vegetables"},
	{Name: "Onion", Category: "Vegetables"},
	{Name: "Tomato", Category: "Vegetables"},
	{Name: "Apple", Category: "Fruits"},
	{Name: "Lemon", Category: "Fruits"},
	{Name: "Salt", Category: "Seasoning"},
	{Name: "Black Pepper", Category: "Seasoning"},
	{Name: "Milk", Category: "Diary"},
	{Name: "Butter", Category: "Diary"},
	{Name: "Sugar", Category: "Sweets"},
	{Name: "Flour", Category: "Baking"},
	{Name: "Baking Powder", Category: "Baking"},
	{Name: "Soy Sauce", Category: "Sauces"},
	{Name: "Olive Oil", Category: "Oils"},
	{Name: "Sunflower Seeds", Category: "Seeds"},
	{Name: "Water", Category: "Fluids"},
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&seedIngredients)
	if result.Error != nil {
		logger.Fatal("failed to seed ingredients", zap.Error(result.Error))
	}

	logger.Info("seeded ingredients", zap.Int64("rows", result.RowsAffected))
}
