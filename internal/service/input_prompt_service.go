package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"answerhub/internal/messaging"
	"answerhub/internal/models"
	"answerhub/internal/repository"
)

// Caller identifies an authenticated user on a mutation path.
type Caller struct {
	ID    uuid.UUID
	Roles []string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	for _, r := range c.Roles {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}

// InputPromptService defines the business logic for input prompts.
type InputPromptService interface {
	// Create persists a new prompt. caller may be nil (anonymous creation);
	// an ownerless prompt is always public since there is no one to scope it to.
	Create(ctx context.Context, caller *uuid.UUID, prompt, content string, isPublic bool) (*models.InputPrompt, error)

	// Update fully replaces prompt, content, active and is_public of an
	// existing record, subject to the ownership check.
	Update(ctx context.Context, caller Caller, id int64, prompt, content string, active, isPublic bool) (*models.InputPrompt, error)

	// Delete deactivates a prompt (soft delete). The record stays queryable
	// by ID with active=false; it never comes back through active-only listings.
	Delete(ctx context.Context, caller Caller, id int64) error

	// GetByID returns a prompt subject to the visibility filter: with a
	// caller the record must be owned by them or be ownerless, without one
	// only ownerless records are visible.
	GetByID(ctx context.Context, caller *uuid.UUID, id int64) (*models.InputPrompt, error)

	// ListByUser returns the prompts owned by userID, optionally restricted
	// to active ones.
	ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*models.InputPrompt, error)

	// ListPublic returns all public, active prompts.
	ListPublic(ctx context.Context) ([]*models.InputPrompt, error)

	// ListAll returns every prompt regardless of owner or active flag.
	// Admin use only; the handler layer enforces the role.
	ListAll(ctx context.Context) ([]*models.InputPrompt, error)
}

type InputPromptServiceImpl struct {
	repo      repository.InputPromptRepository
	publisher messaging.PromptEventPublisher
	logger    *zap.Logger
}

var _ InputPromptService = (*InputPromptServiceImpl)(nil)

func NewInputPromptService(
	repo repository.InputPromptRepository,
	publisher messaging.PromptEventPublisher,
	logger *zap.Logger,
) *InputPromptServiceImpl {
	return &InputPromptServiceImpl{
		repo:      repo,
		publisher: publisher,
		logger:    logger.Named("InputPromptService"),
	}
}

// validatePrompt enforces the only content rule: the prompt label must not
// exceed models.MaxPromptLength characters. Characters, not bytes, matching
// the char_length CHECK on the table. On rejection a truncated preview of the
// offending text is logged; the text itself never is.
func (s *InputPromptServiceImpl) validatePrompt(prompt string) error {
	length := utf8.RuneCountInString(prompt)
	if length > models.MaxPromptLength {
		preview := []rune(prompt)
		if len(preview) > 50 {
			preview = preview[:50]
		}
		s.logger.Warn("Prompt is too long, cannot be used",
			zap.String("preview", string(preview)+"..."),
			zap.Int("length", length))
		return models.ErrPromptTooLong
	}
	return nil
}

// authorize checks whether the caller may mutate the given prompt.
// An owned prompt is mutable only by its exact owner. An ownerless
// (system-wide) prompt is mutable only by admins.
func (s *InputPromptServiceImpl) authorize(caller Caller, prompt *models.InputPrompt) error {
	if prompt.UserID == nil {
		if caller.IsAdmin() {
			return nil
		}
		return models.ErrNotOwner
	}
	if *prompt.UserID != caller.ID {
		return models.ErrNotOwner
	}
	return nil
}

// publishEvent emits a lifecycle event. Failures are logged and swallowed:
// eventing is a diagnostic sink and never affects the request outcome.
func (s *InputPromptServiceImpl) publishEvent(ctx context.Context, eventType string, prompt *models.InputPrompt) {
	event := messaging.PromptEvent{
		EventType: eventType,
		PromptID:  prompt.ID,
		UserID:    prompt.UserID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishPromptEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish prompt event",
			zap.String("event_type", eventType),
			zap.Int64("prompt_id", prompt.ID),
			zap.Error(err))
	}
}

func (s *InputPromptServiceImpl) Create(ctx context.Context, caller *uuid.UUID, prompt, content string, isPublic bool) (*models.InputPrompt, error) {
	if err := s.validatePrompt(prompt); err != nil {
		return nil, err
	}

	if caller == nil {
		// Anonymous prompts have no owner to scope them to.
		isPublic = true
	}

	inputPrompt := &models.InputPrompt{
		Prompt:   prompt,
		Content:  content,
		Active:   true,
		IsPublic: isPublic,
		UserID:   caller,
	}

	if err := s.repo.Create(ctx, inputPrompt); err != nil {
		return nil, fmt.Errorf("failed to create input prompt: %w", err)
	}

	s.publishEvent(ctx, messaging.PromptEventTypeCreated, inputPrompt)
	return inputPrompt, nil
}

func (s *InputPromptServiceImpl) Update(ctx context.Context, caller Caller, id int64, prompt, content string, active, isPublic bool) (*models.InputPrompt, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validatePrompt(prompt); err != nil {
		return nil, err
	}

	if err := s.authorize(caller, existing); err != nil {
		s.logger.Warn("Update denied: caller does not own prompt",
			zap.Int64("id", id),
			zap.String("caller", caller.ID.String()))
		return nil, err
	}

	existing.Prompt = prompt
	existing.Content = content
	existing.Active = active
	existing.IsPublic = isPublic

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update input prompt %d: %w", id, err)
	}

	s.publishEvent(ctx, messaging.PromptEventTypeUpdated, existing)
	return existing, nil
}

func (s *InputPromptServiceImpl) Delete(ctx context.Context, caller Caller, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(caller, existing); err != nil {
		s.logger.Warn("Delete denied: caller does not own prompt",
			zap.Int64("id", id),
			zap.String("caller", caller.ID.String()))
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete input prompt %d: %w", id, err)
	}

	s.publishEvent(ctx, messaging.PromptEventTypeDeleted, existing)
	return nil
}

func (s *InputPromptServiceImpl) GetByID(ctx context.Context, caller *uuid.UUID, id int64) (*models.InputPrompt, error) {
	prompt, err := s.repo.GetVisibleByID(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *InputPromptServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*models.InputPrompt, error) {
	var active *bool
	if activeOnly {
		t := true
		active = &t
	}
	prompts, err := s.repo.ListByUser(ctx, &userID, active)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts for user %s: %w", userID, err)
	}
	return prompts, nil
}

func (s *InputPromptServiceImpl) ListPublic(ctx context.Context) ([]*models.InputPrompt, error) {
	prompts, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list public prompts: %w", err)
	}
	return prompts, nil
}

func (s *InputPromptServiceImpl) ListAll(ctx context.Context) ([]*models.InputPrompt, error) {
	prompts, err := s.repo.ListByUser(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list all prompts: %w", err)
	}
	return prompts, nil
}
