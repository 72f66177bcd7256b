package api

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookbookd/backend/internal/models"
)

func TestCreateRecipe(t *testing.T) {
	router, db, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	carrot := createCatalogIngredient(t, db, "Carrot", "Vegetables")
	salt := createCatalogIngredient(t, db, "Salt", "Seasoning")

	fields := baseRecipeFields("Carrot Soup")
	fields["ingredients"] = fmt.Sprintf(
		`[{"id": %d, "amount": 500, "prefix": "g"}, {"id": %d, "amount": 1, "prefix": ""}]`,
		carrot.ID, salt.ID)
	fields["instructions"] = `[{"step_number": 1, "data": "Chop"}, {"step_number": 2, "data": "Simmer"}]`

	body, contentType := buildRecipeForm(t, fields, true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Carrot Soup", resp.Title)
	assert.Equal(t, "alice", resp.AuthorUsername)
	require.Len(t, resp.Ingredients, 2)
	require.Len(t, resp.Instructions, 2)
	assert.Equal(t, "Carrot", resp.Ingredients[0].Name)
	assert.Equal(t, "Vegetables", resp.Ingredients[0].Category)
	assert.Equal(t, uint(1), resp.Instructions[0].StepNumber)
	assert.True(t, strings.HasPrefix(resp.Image, "/media/images/"))
}

func TestCreateRecipeMissingIngredientsKey(t *testing.T) {
	router, db, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	fields := baseRecipeFields("No Ingredients Key")
	delete(fields, "ingredients")

	body, contentType := buildRecipeForm(t, fields, true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)

	// No row may exist after the refused request.
	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipeMalformedIngredients(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	fields := baseRecipeFields("Broken")
	fields["ingredients"] = "{not json"

	body, contentType := buildRecipeForm(t, fields, true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestCreateRecipeUnknownIngredient(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	fields := baseRecipeFields("Ghost")
	fields["ingredients"] = `[{"id": 9999, "amount": 1, "prefix": ""}]`

	body, contentType := buildRecipeForm(t, fields, true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestCreateRecipeRejectsBadImage(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	body, contentType := buildRecipeForm(t, baseRecipeFields("Bad Image"), false)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	// No image part at all.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	body, contentType := buildRecipeForm(t, baseRecipeFields("Anonymous"), true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}

func TestUpdateRecipeReconciles(t *testing.T) {
	router, db, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	carrot := createCatalogIngredient(t, db, "Carrot", "Vegetables")
	onion := createCatalogIngredient(t, db, "Onion", "Vegetables")

	fields := baseRecipeFields("Stew")
	fields["ingredients"] = fmt.Sprintf(
		`[{"id": %d, "amount": 2, "prefix": ""}, {"id": %d, "amount": 1, "prefix": ""}]`,
		carrot.ID, onion.ID)
	fields["instructions"] = `[{"step_number": 1, "data": "Prep"}, {"step_number": 2, "data": "Cook"}]`

	body, contentType := buildRecipeForm(t, fields, true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	var created RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Drop the onion, rescale the carrot, rewrite step 1, drop step 2.
	update := map[string]string{
		"ingredients":  fmt.Sprintf(`[{"id": %d, "amount": 5, "prefix": "g"}]`, carrot.ID),
		"instructions": `[{"step_number": 1, "data": "Prep everything"}]`,
	}
	body, contentType = buildRecipeForm(t, update, false)
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/v1/recipes/%d", created.ID), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code, w.Body.String())

	var updated RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))

	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, carrot.ID, updated.Ingredients[0].IngredientID)
	assert.Equal(t, uint(5), updated.Ingredients[0].Amount)
	assert.Equal(t, "g", updated.Ingredients[0].Prefix)

	require.Len(t, updated.Instructions, 1)
	assert.Equal(t, "Prep everything", updated.Instructions[0].Data)

	// The image was not resubmitted and must be unchanged.
	assert.Equal(t, created.Image, updated.Image)
}

func TestUpdateRecipeMissingInstructionsKey(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	body, contentType := buildRecipeForm(t, map[string]string{"ingredients": "[]"}, false)
	req := httptest.NewRequest("PUT", "/api/v1/recipes/1", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestUpdateRecipeNotFound(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	body, contentType := buildRecipeForm(t, map[string]string{
		"ingredients":  "[]",
		"instructions": "[]",
	}, false)
	req := httptest.NewRequest("PUT", "/api/v1/recipes/42", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestRateRecipe(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	body, contentType := buildRecipeForm(t, baseRecipeFields("Rated"), true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	var created RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	rate := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/recipes/%d/rate", created.ID), strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w2 := rate(`{"stars": 4}`)
	require.Equal(t, 200, w2.Code, w2.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	assert.Equal(t, "Created new rating", resp["message"])

	w2 = rate(`{"stars": 2}`)
	require.Equal(t, 200, w2.Code)
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	assert.Equal(t, "Rating updated", resp["message"])

	w2 = rate(`{}`)
	assert.Equal(t, 400, w2.Code)
}

func TestGetAndListRecipes(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	body, contentType := buildRecipeForm(t, baseRecipeFields("Listed"), true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code)

	var created RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/v1/recipes/%d", created.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/recipes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var list []RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestDeleteRecipe(t *testing.T) {
	router, db, authService := setupTestRouter(t)
	_, token := createTestUserAndToken(t, authService, "alice")

	body, contentType := buildRecipeForm(t, baseRecipeFields("Doomed"), true)
	req := httptest.NewRequest("POST", "/api/v1/recipes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code)

	var created RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/recipes/%d", created.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}
