package api

import (
	"time"

	"github.com/cookbookd/backend/internal/models"
)

// RecipeIngredientResponse is the API projection of one join row, with the
// ingredient's name and category pulled across the join for display.
type RecipeIngredientResponse struct {
	RecordID     uint   `json:"record_id"`
	IngredientID uint   `json:"ingredient_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Amount       uint   `json:"amount"`
	Prefix       string `json:"prefix"`
}

type InstructionResponse struct {
	ID         uint   `json:"id"`
	Recipe     uint   `json:"recipe"`
	StepNumber uint   `json:"step_number"`
	Data       string `json:"data"`
}

// RecipeResponse is the full API projection of a recipe: scalar fields plus
// the derived ingredient and instruction lists and the author's username.
type RecipeResponse struct {
	ID             uint                       `json:"id"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
	Title          string                     `json:"title"`
	Category       string                     `json:"category"`
	Description    string                     `json:"description"`
	CookTime       uint                       `json:"cook_time"`
	Servings       uint                       `json:"servings"`
	Difficulty     string                     `json:"difficulty"`
	Image          string                     `json:"image"`
	Author         uint                       `json:"author"`
	AuthorUsername string                     `json:"author_username"`
	Ingredients    []RecipeIngredientResponse `json:"ingredients"`
	Instructions   []InstructionResponse      `json:"instructions"`
}

// UserResponse is the API projection of a user with their authored recipes.
// The password never appears here.
type UserResponse struct {
	ID          uint             `json:"id"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	UserRecipes []RecipeResponse `json:"user_recipes"`
}

// NewRecipeResponse projects a recipe with preloaded associations into its
// API shape.
func NewRecipeResponse(recipe *models.Recipe) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, record := range recipe.Ingredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			RecordID:     record.ID,
			IngredientID: record.IngredientID,
			Name:         record.Ingredient.Name,
			Category:     record.Ingredient.Category,
			Amount:       record.Amount,
			Prefix:       record.Prefix,
		})
	}

	instructions := make([]InstructionResponse, 0, len(recipe.Instructions))
	for _, step := range recipe.Instructions {
		instructions = append(instructions, NewInstructionResponse(&step))
	}

	return RecipeResponse{
		ID:             recipe.ID,
		CreatedAt:      recipe.CreatedAt,
		UpdatedAt:      recipe.UpdatedAt,
		Title:          recipe.Title,
		Category:       recipe.Category,
		Description:    recipe.Description,
		CookTime:       recipe.CookTime,
		Servings:       recipe.Servings,
		Difficulty:     recipe.Difficulty,
		Image:          recipe.Image,
		Author:         recipe.AuthorID,
		AuthorUsername: recipe.Author.Username,
		Ingredients:    ingredients,
		Instructions:   instructions,
	}
}

func NewInstructionResponse(instruction *models.Instruction) InstructionResponse {
	return InstructionResponse{
		ID:         instruction.ID,
		Recipe:     instruction.RecipeID,
		StepNumber: instruction.StepNumber,
		Data:       instruction.Data,
	}
}

func NewRecipeIngredientResponse(record *models.RecipeIngredient) RecipeIngredientResponse {
	return RecipeIngredientResponse{
		RecordID:     record.ID,
		IngredientID: record.IngredientID,
		Name:         record.Ingredient.Name,
		Category:     record.Ingredient.Category,
		Amount:       record.Amount,
		Prefix:       record.Prefix,
	}
}

func NewUserResponse(user *models.User) UserResponse {
	recipes := make([]RecipeResponse, 0, len(user.Recipes))
	for _, recipe := range user.Recipes {
		recipes = append(recipes, NewRecipeResponse(&recipe))
	}
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		UserRecipes: recipes,
	}
}
