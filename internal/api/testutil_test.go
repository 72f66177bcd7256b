package api

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cookbookd/backend/config"
	"github.com/cookbookd/backend/internal/database"
	"github.com/cookbookd/backend/internal/models"
	"github.com/cookbookd/backend/internal/service"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

// setupTestRouter builds the API over an in-memory database with local
// image storage. Redis-backed features stay disabled.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *service.AuthService) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db))

	logger := zap.NewNop()
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		UploadDir:     t.TempDir(),
		MediaURL:      "/media",
		PublicBaseURL: "http://localhost:8080",
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	userService := service.NewUserService(db)
	recipeService := service.NewRecipeService(db)
	ingredientService := service.NewIngredientService(db)
	instructionService := service.NewInstructionService(db)
	recipeIngredientService := service.NewRecipeIngredientService(db)
	imageService := service.NewImageService(cfg, nil, logger)
	emailService := service.NewEmailService(cfg, logger)

	router := gin.New()
	v1 := router.Group("/api/v1")

	NewAuthHandler(authService, userService, nil, emailService, cfg.PublicBaseURL, logger).RegisterRoutes(v1)
	NewUserHandler(userService, authService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, imageService, authService, nil).RegisterRoutes(v1)
	NewIngredientHandler(ingredientService, authService).RegisterRoutes(v1)
	NewInstructionHandler(instructionService, authService).RegisterRoutes(v1)
	NewRecipeIngredientHandler(recipeIngredientService, authService).RegisterRoutes(v1)

	return router, db, authService
}

func createTestUserAndToken(t *testing.T, authService *service.AuthService, username string) (*models.User, string) {
	user, token, err := authService.Register(username, username+"@example.com", "password123")
	require.NoError(t, err)
	return user, token
}

func createCatalogIngredient(t *testing.T, db *gorm.DB, name, category string) *models.Ingredient {
	ingredient := &models.Ingredient{Name: name, Category: category}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// buildRecipeForm assembles a multipart body. Fields with an empty value are
// still written so key-presence semantics can be exercised; keys absent from
// the map are omitted entirely.
func buildRecipeForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if withImage {
		part, err := writer.CreateFormFile("image", "recipe.png")
		require.NoError(t, err)
		_, err = part.Write(pngSignature)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func baseRecipeFields(title string) map[string]string {
	return map[string]string{
		"title":        title,
		"description":  "A test recipe",
		"category":     "Meat",
		"cook_time":    "30",
		"servings":     "4",
		"difficulty":   "Easy",
		"ingredients":  "[]",
		"instructions": "[]",
	}
}
