package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookbookd/backend/internal/models"
)

func TestGetUserWithRecipes(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	recipes := NewRecipeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	carrot := createTestIngredient(t, db, "Carrot", "Vegetables")

	_, err := recipes.CreateRecipe(ctx, testRecipe(author, "Carrot Soup"),
		[]IngredientEntry{{ID: carrot.ID, Amount: 1}},
		[]InstructionEntry{{StepNumber: 1, Data: "Cook"}})
	require.NoError(t, err)

	user, err := users.GetUser(ctx, author.ID)
	require.NoError(t, err)

	require.Len(t, user.Recipes, 1)
	assert.Equal(t, "Carrot Soup", user.Recipes[0].Title)
	assert.Len(t, user.Recipes[0].Ingredients, 1)
	assert.Equal(t, "Carrot", user.Recipes[0].Ingredients[0].Ingredient.Name)
}

func TestGetUserByEmail(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")

	user, err := users.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = users.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	recipes := NewRecipeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	created, err := recipes.CreateRecipe(ctx, testRecipe(author, "Orphan"),
		nil, []InstructionEntry{{StepNumber: 1, Data: "Cook"}})
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(ctx, author.ID))

	_, err = users.GetUser(ctx, author.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
}
