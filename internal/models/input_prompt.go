package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxPromptLength is the hard limit on the prompt label text.
// Content has no length constraint.
const MaxPromptLength = 1000

// InputPrompt is a reusable question template: a short prompt label plus the
// full content body substituted when the prompt is used.
// UserID == nil means the prompt is system-wide (owned by no one).
type InputPrompt struct {
	ID        int64      `db:"id" json:"id"`
	Prompt    string     `db:"prompt" json:"prompt"`
	Content   string     `db:"content" json:"content"`
	Active    bool       `db:"active" json:"active"`
	IsPublic  bool       `db:"is_public" json:"is_public"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// IsOwnedBy reports whether the prompt belongs to the given user.
// An ownerless prompt belongs to nobody.
func (p *InputPrompt) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID != nil && *p.UserID == userID
}

// InputPromptSnapshot is the external read-only representation of an InputPrompt.
type InputPromptSnapshot struct {
	ID        int64      `json:"id"`
	Prompt    string     `json:"prompt"`
	Content   string     `json:"content"`
	Active    bool       `json:"active"`
	IsPublic  bool       `json:"is_public"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewInputPromptSnapshot builds the wire representation from the stored entity.
func NewInputPromptSnapshot(p *InputPrompt) InputPromptSnapshot {
	return InputPromptSnapshot{
		ID:        p.ID,
		Prompt:    p.Prompt,
		Content:   p.Content,
		Active:    p.Active,
		IsPublic:  p.IsPublic,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewInputPromptSnapshots converts a list of entities.
func NewInputPromptSnapshots(prompts []*InputPrompt) []InputPromptSnapshot {
	snapshots := make([]InputPromptSnapshot, 0, len(prompts))
	for _, p := range prompts {
		if p != nil {
			snapshots = append(snapshots, NewInputPromptSnapshot(p))
		}
	}
	return snapshots
}
