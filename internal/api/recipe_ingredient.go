package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cookbookd/backend/internal/middleware"
	"github.com/cookbookd/backend/internal/models"
	"github.com/cookbookd/backend/internal/service"
)

// RecipeIngredientHandler serves direct row access on /recipe_ingredient.
type RecipeIngredientHandler struct {
	records     *service.RecipeIngredientService
	authService *service.AuthService
}

func NewRecipeIngredientHandler(records *service.RecipeIngredientService, authService *service.AuthService) *RecipeIngredientHandler {
	return &RecipeIngredientHandler{
		records:     records,
		authService: authService,
	}
}

func (h *RecipeIngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	records := router.Group("/recipe_ingredient")
	records.Use(middleware.AuthMiddleware(h.authService))
	{
		records.GET("", h.List)
		records.GET("/:id", h.Get)
		records.POST("", h.Create)
		records.PUT("/:id", h.Update)
		records.DELETE("/:id", h.Delete)
	}
}

type recipeIngredientRequest struct {
	Recipe     uint   `json:"recipe" binding:"required"`
	Ingredient uint   `json:"ingredient" binding:"required"`
	Amount     uint   `json:"amount" binding:"required,min=1"`
	Prefix     string `json:"prefix"`
}

func (h *RecipeIngredientHandler) List(c *gin.Context) {
	records, err := h.records.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]RecipeIngredientResponse, 0, len(records))
	for i := range records {
		out = append(out, NewRecipeIngredientResponse(&records[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecipeIngredientHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	record, err := h.records.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRecipeIngredientResponse(record))
}

func (h *RecipeIngredientHandler) Create(c *gin.Context) {
	var req recipeIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.records.Create(c.Request.Context(), &models.RecipeIngredient{
		RecipeID:     req.Recipe,
		IngredientID: req.Ingredient,
		Amount:       req.Amount,
		Prefix:       req.Prefix,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRecipeIngredientResponse(record))
}

func (h *RecipeIngredientHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	var req struct {
		Amount uint   `json:"amount" binding:"required,min=1"`
		Prefix string `json:"prefix"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.records.Update(c.Request.Context(), id, req.Amount, req.Prefix)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRecipeIngredientResponse(record))
}

func (h *RecipeIngredientHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	if err := h.records.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
