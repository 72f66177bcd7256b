package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookbookd/backend/internal/service"
)

// respondError maps service errors to status codes. Unknown errors become a
// generic 500 so store internals never reach the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrMalformedPayload),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrMissingInstructionData),
		errors.Is(err, service.ErrIngredientInUse),
		errors.Is(err, service.ErrMissingStars),
		errors.Is(err, service.ErrInvalidImageType),
		errors.Is(err, service.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
