package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"answerhub/internal/messaging"
)

// Mock PromptEventPublisher
type PromptEventPublisher struct {
	mock.Mock
}

func (m *PromptEventPublisher) PublishPromptEvent(ctx context.Context, event messaging.PromptEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
