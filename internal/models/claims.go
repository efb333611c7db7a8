package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin marks users allowed to manage system-wide (ownerless) prompts.
const RoleAdmin = "admin"

// Claims holds the JWT payload issued by the auth service.
type Claims struct {
	UserID               uuid.UUID `json:"user_id"`
	Roles                []string  `json:"roles"`
	jwt.RegisteredClaims           // Issuer, Subject, ExpiresAt, IssuedAt, ...
}

// HasRole reports whether the claims carry the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
