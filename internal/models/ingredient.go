package models

// IngredientCategories is the fixed set of categories an ingredient can
// belong to.
var IngredientCategories = []string{
	"Vegetables",
	"Fruits",
	"Seasoning",
	"Diary",
	"Sweets",
	"Baking",
	"Sauces",
	"Oils",
	"Seeds",
	"Fluids",
}

type Ingredient struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"size:30;uniqueIndex;not null" json:"name"`
	Category string `gorm:"size:30;not null" json:"category"`
}

// ValidIngredientCategory reports whether category is one of the allowed
// ingredient categories.
func ValidIngredientCategory(category string) bool {
	for _, c := range IngredientCategories {
		if c == category {
			return true
		}
	}
	return false
}
