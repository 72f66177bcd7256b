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

// InstructionHandler serves direct row access on /instructions. The recipe
// write path is the usual way instruction rows change.
type InstructionHandler struct {
	instructions *service.InstructionService
	authService  *service.AuthService
}

func NewInstructionHandler(instructions *service.InstructionService, authService *service.AuthService) *InstructionHandler {
	return &InstructionHandler{
		instructions: instructions,
		authService:  authService,
	}
}

func (h *InstructionHandler) RegisterRoutes(router *gin.RouterGroup) {
	instructions := router.Group("/instructions")
	instructions.Use(middleware.AuthMiddleware(h.authService))
	{
		instructions.GET("", h.ListInstructions)
		instructions.GET("/:id", h.GetInstruction)
		instructions.POST("", h.CreateInstruction)
		instructions.PUT("/:id", h.UpdateInstruction)
		instructions.DELETE("/:id", h.DeleteInstruction)
	}
}

type instructionRequest struct {
	Recipe     uint   `json:"recipe" binding:"required"`
	StepNumber uint   `json:"step_number"`
	Data       string `json:"data"`
}

func (h *InstructionHandler) ListInstructions(c *gin.Context) {
	instructions, err := h.instructions.ListInstructions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]InstructionResponse, 0, len(instructions))
	for i := range instructions {
		out = append(out, NewInstructionResponse(&instructions[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *InstructionHandler) GetInstruction(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instruction id"})
		return
	}

	instruction, err := h.instructions.GetInstruction(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "instruction not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewInstructionResponse(instruction))
}

func (h *InstructionHandler) CreateInstruction(c *gin.Context) {
	var req instructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instruction, err := h.instructions.CreateInstruction(c.Request.Context(), &models.Instruction{
		RecipeID:   req.Recipe,
		StepNumber: req.StepNumber,
		Data:       req.Data,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewInstructionResponse(instruction))
}

func (h *InstructionHandler) UpdateInstruction(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instruction id"})
		return
	}

	var req struct {
		StepNumber uint   `json:"step_number"`
		Data       string `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instruction, err := h.instructions.UpdateInstruction(c.Request.Context(), id, req.Data, req.StepNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "instruction not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewInstructionResponse(instruction))
}

func (h *InstructionHandler) DeleteInstruction(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instruction id"})
		return
	}

	if err := h.instructions.DeleteInstruction(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "instruction not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
