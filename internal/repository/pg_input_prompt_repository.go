package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"answerhub/internal/models"
)

const inputPromptFields = `id, prompt, content, active, is_public, user_id, created_at, updated_at`

// Compile-time check to ensure PgInputPromptRepository implements InputPromptRepository
var _ InputPromptRepository = (*PgInputPromptRepository)(nil)

type PgInputPromptRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPgInputPromptRepository(db *pgxpool.Pool, logger *zap.Logger) *PgInputPromptRepository {
	return &PgInputPromptRepository{
		db:     db,
		logger: logger.Named("PgInputPromptRepo"),
	}
}

func scanInputPrompt(row pgx.Row) (*models.InputPrompt, error) {
	var p models.InputPrompt
	err := row.Scan(
		&p.ID, &p.Prompt, &p.Content, &p.Active, &p.IsPublic, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgInputPromptRepository) Create(ctx context.Context, prompt *models.InputPrompt) error {
	query := `INSERT INTO input_prompts (prompt, content, active, is_public, user_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		prompt.Prompt, prompt.Content, prompt.Active, prompt.IsPublic, prompt.UserID,
	).Scan(&prompt.ID, &prompt.CreatedAt, &prompt.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create input prompt", zap.Error(err))
		return fmt.Errorf("failed to create input prompt: %w", err)
	}
	r.logger.Info("Input prompt created", zap.Int64("id", prompt.ID))
	return nil
}

func (r *PgInputPromptRepository) GetByID(ctx context.Context, id int64) (*models.InputPrompt, error) {
	query := fmt.Sprintf(`SELECT %s FROM input_prompts WHERE id = $1`, inputPromptFields)
	prompt, err := scanInputPrompt(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPromptNotFound
		}
		r.logger.Error("Failed to get input prompt by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get input prompt by ID %d: %w", id, err)
	}
	return prompt, nil
}

func (r *PgInputPromptRepository) GetVisibleByID(ctx context.Context, id int64, userID *uuid.UUID) (*models.InputPrompt, error) {
	var (
		query string
		args  []interface{}
	)
	if userID != nil {
		query = fmt.Sprintf(`SELECT %s FROM input_prompts WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)`, inputPromptFields)
		args = []interface{}{id, *userID}
	} else {
		query = fmt.Sprintf(`SELECT %s FROM input_prompts WHERE id = $1 AND user_id IS NULL`, inputPromptFields)
		args = []interface{}{id}
	}

	prompt, err := scanInputPrompt(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Not-found and access-denied collapse into one error so the
			// existence of other users' prompts is not leaked.
			return nil, models.ErrPromptNotFound
		}
		r.logger.Error("Failed to get visible input prompt", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get visible input prompt %d: %w", id, err)
	}
	return prompt, nil
}

func (r *PgInputPromptRepository) Update(ctx context.Context, prompt *models.InputPrompt) error {
	query := `UPDATE input_prompts
	          SET prompt = $1, content = $2, active = $3, is_public = $4, updated_at = NOW()
	          WHERE id = $5 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		prompt.Prompt, prompt.Content, prompt.Active, prompt.IsPublic, prompt.ID,
	).Scan(&prompt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrPromptNotFound
		}
		r.logger.Error("Failed to update input prompt", zap.Int64("id", prompt.ID), zap.Error(err))
		return fmt.Errorf("failed to update input prompt %d: %w", prompt.ID, err)
	}
	r.logger.Info("Input prompt updated", zap.Int64("id", prompt.ID))
	return nil
}

func (r *PgInputPromptRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE input_prompts SET active = FALSE, updated_at = NOW() WHERE id = $1`
	commandTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to soft delete input prompt", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to soft delete input prompt %d: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrPromptNotFound
	}
	r.logger.Info("Input prompt deactivated", zap.Int64("id", id))
	return nil
}

func (r *PgInputPromptRepository) ListByUser(ctx context.Context, userID *uuid.UUID, active *bool) ([]*models.InputPrompt, error) {
	var args []interface{}
	var conditions []string
	paramCount := 1

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM input_prompts`, inputPromptFields))

	if userID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", paramCount))
		args = append(args, *userID)
		paramCount++
	}
	if active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", paramCount))
		args = append(args, *active)
		paramCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	return r.list(ctx, queryBuilder.String(), args...)
}

func (r *PgInputPromptRepository) ListPublic(ctx context.Context) ([]*models.InputPrompt, error) {
	query := fmt.Sprintf(`SELECT %s FROM input_prompts WHERE is_public = TRUE AND active = TRUE`, inputPromptFields)
	return r.list(ctx, query)
}

func (r *PgInputPromptRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.InputPrompt, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list input prompts", zap.Error(err))
		return nil, fmt.Errorf("failed to list input prompts: %w", err)
	}
	defer rows.Close()

	prompts := make([]*models.InputPrompt, 0)
	for rows.Next() {
		prompt, err := scanInputPrompt(rows)
		if err != nil {
			r.logger.Error("Failed to scan input prompt row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan input prompt row: %w", err)
		}
		prompts = append(prompts, prompt)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error during rows iteration for list input prompts", zap.Error(err))
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}

	return prompts, nil
}
