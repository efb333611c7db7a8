package repository

import (
	"context"

	"github.com/google/uuid"

	"answerhub/internal/models"
)

// InputPromptRepository defines the interface for input prompt storage operations.
type InputPromptRepository interface {
	// Create persists a new prompt and fills in its generated ID and timestamps.
	Create(ctx context.Context, prompt *models.InputPrompt) error

	// GetByID retrieves a prompt by ID regardless of ownership or active flag.
	// Used for mutation paths where the authorization check happens in the service.
	GetByID(ctx context.Context, id int64) (*models.InputPrompt, error)

	// GetVisibleByID retrieves a prompt by ID subject to the visibility filter:
	// with a userID the row must be owned by that user or be ownerless,
	// without one only ownerless rows match.
	GetVisibleByID(ctx context.Context, id int64, userID *uuid.UUID) (*models.InputPrompt, error)

	// Update replaces prompt, content, active and is_public of an existing row.
	Update(ctx context.Context, prompt *models.InputPrompt) error

	// SoftDelete flips the active flag to false. The row stays queryable by ID.
	SoftDelete(ctx context.Context, id int64) error

	// ListByUser returns prompts filtered by owner (all owners when userID is nil)
	// and, when active is non-nil, by the active flag. Storage-natural order.
	ListByUser(ctx context.Context, userID *uuid.UUID, active *bool) ([]*models.InputPrompt, error)

	// ListPublic returns prompts with is_public = true and active = true.
	ListPublic(ctx context.Context) ([]*models.InputPrompt, error)
}
