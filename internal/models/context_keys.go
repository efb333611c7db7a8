package models

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// UserContextKey stores the authenticated caller's UserID in the request context.
	UserContextKey contextKey = "userID"
	// RolesContextKey stores the caller's []string roles in the request context.
	RolesContextKey contextKey = "userRoles"
)

// GetUserIDFromContext extracts the caller's UserID from the context.
// Returns uuid.Nil and false when no identity is attached.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserContextKey).(uuid.UUID)
	return userID, ok
}

// GetRolesFromContext extracts the caller's roles from the context.
func GetRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(RolesContextKey).([]string)
	return roles, ok
}
