package models

import (
	"time"
)

// RecipeCategories is the fixed set of categories a recipe can belong to.
var RecipeCategories = []string{
	"Soups and Stews",
	"Salads",
	"Meat",
	"Side Dishes",
	"Desserts",
	"Breakfast and Brunch",
	"Sauces and Condiments",
}

// Difficulties is the fixed set of recipe difficulty levels.
var Difficulties = []string{
	"Easy",
	"Intermediate",
	"Hard",
}

// AmountPrefixes is the fixed set of units a recipe ingredient amount can
// carry. The empty prefix means a bare count.
var AmountPrefixes = []string{"", "g", "ml"}

type Recipe struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Title        string             `gorm:"size:30;uniqueIndex;not null" json:"title"`
	Category     string             `gorm:"size:50;not null" json:"category"`
	Description  string             `gorm:"size:100" json:"description"`
	CookTime     uint               `gorm:"not null;default:0" json:"cook_time"`
	Servings     uint               `gorm:"not null;default:1" json:"servings"`
	Difficulty   string             `gorm:"size:20;not null" json:"difficulty"`
	Image        string             `gorm:"size:255;not null" json:"image"`
	AuthorID     uint               `gorm:"not null;index" json:"author"`
	Author       User               `json:"-"`
	Ingredients  []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Instructions []Instruction      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeIngredient attaches an ingredient to a recipe with an amount and
// unit. A recipe lists any given ingredient at most once.
type RecipeIngredient struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Amount       uint       `gorm:"not null;default:1" json:"amount"`
	Prefix       string     `gorm:"size:10;not null;default:''" json:"prefix"`
}

// Instruction is one ordered step of a recipe. Steps are 1-based and unique
// per recipe.
type Instruction struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	RecipeID   uint   `gorm:"not null;uniqueIndex:idx_recipe_step" json:"recipe"`
	StepNumber uint   `gorm:"not null;default:1;uniqueIndex:idx_recipe_step" json:"step_number"`
	Data       string `gorm:"type:text;not null" json:"data"`
}

// ValidRecipeCategory reports whether category is one of the allowed recipe
// categories.
func ValidRecipeCategory(category string) bool {
	for _, c := range RecipeCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidDifficulty reports whether difficulty is one of the allowed levels.
func ValidDifficulty(difficulty string) bool {
	for _, d := range Difficulties {
		if d == difficulty {
			return true
		}
	}
	return false
}

// ValidAmountPrefix reports whether prefix is one of the allowed units.
func ValidAmountPrefix(prefix string) bool {
	for _, p := range AmountPrefixes {
		if p == prefix {
			return true
		}
	}
	return false
}
