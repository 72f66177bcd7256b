package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cookbookd/backend/internal/service"
)

// AuthHandler serves credential login and the password-reset flow.
type AuthHandler struct {
	authService   *service.AuthService
	users         *service.UserService
	resets        *service.PasswordResetService
	email         *service.EmailService
	publicBaseURL string
	logger        *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, users *service.UserService, resets *service.PasswordResetService, email *service.EmailService, publicBaseURL string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		users:         users,
		resets:        resets,
		email:         email,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth", h.Login)

	reset := router.Group("/password-reset")
	{
		reset.POST("/request", h.RequestPasswordReset)
		reset.POST("/confirm", h.ConfirmPasswordReset)
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// RequestPasswordReset issues a one-time reset token for the account behind
// the submitted email and mails the reset link.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	if h.resets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "password reset is not available"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.resets.IssueToken(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resetLink := fmt.Sprintf("%s/password-reset/%s", h.publicBaseURL, token)
	if err := h.email.SendPasswordReset(user.Email, resetLink); err != nil {
		h.logger.Error("failed to send password reset email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Password reset link sent to your email."})
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	if h.resets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "password reset is not available"})
		return
	}

	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.resets.ConsumeToken(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.authService.SetPassword(userID, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Password updated."})
}
