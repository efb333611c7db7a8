package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"answerhub/internal/models"
)

// Mock InputPromptRepository
type InputPromptRepository struct {
	mock.Mock
}

func (m *InputPromptRepository) Create(ctx context.Context, prompt *models.InputPrompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *InputPromptRepository) GetByID(ctx context.Context, id int64) (*models.InputPrompt, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.InputPrompt)
	return p, args.Error(1)
}

func (m *InputPromptRepository) GetVisibleByID(ctx context.Context, id int64, userID *uuid.UUID) (*models.InputPrompt, error) {
	args := m.Called(ctx, id, userID)
	p, _ := args.Get(0).(*models.InputPrompt)
	return p, args.Error(1)
}

func (m *InputPromptRepository) Update(ctx context.Context, prompt *models.InputPrompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *InputPromptRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *InputPromptRepository) ListByUser(ctx context.Context, userID *uuid.UUID, active *bool) ([]*models.InputPrompt, error) {
	args := m.Called(ctx, userID, active)
	prompts, _ := args.Get(0).([]*models.InputPrompt)
	return prompts, args.Error(1)
}

func (m *InputPromptRepository) ListPublic(ctx context.Context) ([]*models.InputPrompt, error) {
	args := m.Called(ctx)
	prompts, _ := args.Get(0).([]*models.InputPrompt)
	return prompts, args.Error(1)
}
