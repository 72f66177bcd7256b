package models

// Rating holds one user's star rating of a recipe. A (recipe, user) pair has
// at most one row; the rating endpoint upserts against the composite unique
// index.
type Rating struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	RecipeID uint   `gorm:"not null;uniqueIndex:idx_recipe_user" json:"recipe"`
	Recipe   Recipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_recipe_user" json:"user"`
	User     User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Stars    int    `gorm:"not null" json:"stars"`
}
