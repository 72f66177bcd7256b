package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cookbookd/backend/internal/models"
)

// InstructionService backs the standalone /instructions REST resource. The
// recipe write path manages instruction rows itself; this exists for direct
// row access.
type InstructionService struct {
	db *gorm.DB
}

func NewInstructionService(db *gorm.DB) *InstructionService {
	return &InstructionService{db: db}
}

func (s *InstructionService) CreateInstruction(ctx context.Context, instruction *models.Instruction) (*models.Instruction, error) {
	if instruction.Data == "" || instruction.StepNumber == 0 {
		return nil, ErrMissingInstructionData
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", instruction.RecipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(instruction).Error; err != nil {
		return nil, err
	}
	return instruction, nil
}

func (s *InstructionService) GetInstruction(ctx context.Context, id uint) (*models.Instruction, error) {
	var instruction models.Instruction
	if err := s.db.WithContext(ctx).First(&instruction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &instruction, nil
}

func (s *InstructionService) ListInstructions(ctx context.Context) ([]models.Instruction, error) {
	var instructions []models.Instruction
	err := s.db.WithContext(ctx).Order("recipe_id ASC, step_number ASC").Find(&instructions).Error
	if err != nil {
		return nil, err
	}
	return instructions, nil
}

func (s *InstructionService) UpdateInstruction(ctx context.Context, id uint, data string, stepNumber uint) (*models.Instruction, error) {
	instruction, err := s.GetInstruction(ctx, id)
	if err != nil {
		return nil, err
	}
	if data == "" || stepNumber == 0 {
		return nil, ErrMissingInstructionData
	}
	updates := map[string]interface{}{"data": data, "step_number": stepNumber}
	if err := s.db.WithContext(ctx).Model(instruction).Updates(updates).Error; err != nil {
		return nil, err
	}
	return instruction, nil
}

func (s *InstructionService) DeleteInstruction(ctx context.Context, id uint) error {
	instruction, err := s.GetInstruction(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(instruction).Error
}
