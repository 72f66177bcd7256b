package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cookbookd/backend/internal/middleware"
	"github.com/cookbookd/backend/internal/models"
	"github.com/cookbookd/backend/internal/service"
)

// RecipeHandler serves the /recipes resource: CRUD over multipart forms,
// with the ingredients and instructions collections embedded as JSON text
// fields, plus the rating endpoint.
type RecipeHandler struct {
	recipes     *service.RecipeService
	images      *service.ImageService
	authService *service.AuthService
	rateLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		images:      images,
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	if h.rateLimiter != nil {
		recipes.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/rate", h.RateRecipe)
	}
}

type recipeForm struct {
	Title       string `form:"title" binding:"required,max=30"`
	Description string `form:"description" binding:"max=100"`
	Category    string `form:"category" binding:"required"`
	CookTime    uint   `form:"cook_time"`
	Servings    uint   `form:"servings" binding:"required,min=1"`
	Difficulty  string `form:"difficulty" binding:"required"`
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRecipeResponse(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var form recipeForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRecipeCategory(form.Category) || !models.ValidDifficulty(form.Difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category or difficulty"})
		return
	}

	mf, err := c.MultipartForm()
	if err != nil {
		respondError(c, service.ErrMalformedPayload)
		return
	}
	ingredients, instructions, err := parseCollections(mf)
	if err != nil {
		respondError(c, err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, service.ErrMissingField)
		return
	}
	image, err := h.images.Store(c.Request.Context(), fh)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe := &models.Recipe{
		Title:       form.Title,
		Category:    form.Category,
		Description: form.Description,
		CookTime:    form.CookTime,
		Servings:    form.Servings,
		Difficulty:  form.Difficulty,
		Image:       image,
		AuthorID:    userID,
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), recipe, ingredients, instructions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRecipeResponse(created))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	mf, err := c.MultipartForm()
	if err != nil {
		respondError(c, service.ErrMalformedPayload)
		return
	}
	ingredients, instructions, err := parseCollections(mf)
	if err != nil {
		respondError(c, err)
		return
	}

	image := ""
	if fh, err := c.FormFile("image"); err == nil {
		image, err = h.images.Store(c.Request.Context(), fh)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, image, ingredients, instructions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRecipeResponse(updated))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var body struct {
		Stars *int `json:"stars"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, service.ErrMalformedPayload)
		return
	}
	if body.Stars == nil {
		respondError(c, service.ErrMissingStars)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	rating, created, err := h.recipes.RateRecipe(c.Request.Context(), id, userID, *body.Stars)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Rating updated"
	if created {
		message = "Created new rating"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "result": rating})
}

// parseCollections extracts the JSON-encoded ingredients and instructions
// fields from a multipart form. A key absent from the form entirely is a
// missing-field error, distinct from an empty array.
func parseCollections(form *multipart.Form) ([]service.IngredientEntry, []service.InstructionEntry, error) {
	ingredientsRaw, ok := form.Value["ingredients"]
	if !ok || len(ingredientsRaw) == 0 {
		return nil, nil, service.ErrMissingField
	}
	instructionsRaw, ok := form.Value["instructions"]
	if !ok || len(instructionsRaw) == 0 {
		return nil, nil, service.ErrMissingField
	}

	var ingredients []service.IngredientEntry
	if err := json.Unmarshal([]byte(ingredientsRaw[0]), &ingredients); err != nil {
		return nil, nil, service.ErrMalformedPayload
	}
	var instructions []service.InstructionEntry
	if err := json.Unmarshal([]byte(instructionsRaw[0]), &instructions); err != nil {
		return nil, nil, service.ErrMalformedPayload
	}
	return ingredients, instructions, nil
}

// currentUserID reads the authenticated user's id stored by the auth
// middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
