package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"answerhub/internal/models"
)

// TokenVerifier verifies a bearer token string and returns its claims.
// Errors are models.ErrTokenInvalid, models.ErrTokenExpired, models.ErrTokenMalformed.
type TokenVerifier func(ctx context.Context, tokenString string) (*models.Claims, error)

func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

func attachClaims(c *gin.Context, claims *models.Claims) {
	ctx := c.Request.Context()
	ctx = context.WithValue(ctx, models.UserContextKey, claims.UserID)
	ctx = context.WithValue(ctx, models.RolesContextKey, claims.Roles)
	c.Request = c.Request.WithContext(ctx)
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// caller's UserID and roles to the request context.
func RequireAuth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.With(zap.String("path", c.Request.URL.Path))

		tokenString, ok := extractBearerToken(c)
		if !ok {
			log.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
			return
		}

		claims, err := verifier(c.Request.Context(), tokenString)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "Unauthorized: Invalid token"
			if errors.Is(err, models.ErrTokenExpired) {
				msg = "Unauthorized: Token expired"
			} else if !errors.Is(err, models.ErrTokenMalformed) && !errors.Is(err, models.ErrTokenInvalid) {
				log.Error("Unexpected token verification error", zap.Error(err))
				status = http.StatusInternalServerError
				msg = "Internal server error during token verification"
			}
			log.Warn("Token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(status, models.ErrorResponse{Error: msg})
			return
		}

		attachClaims(c, claims)
		log.Debug("User authorized", zap.String("userID", claims.UserID.String()))
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid bearer token is
// present and lets the request through anonymously otherwise. An invalid
// token is still rejected rather than silently downgraded to anonymous.
func OptionalAuth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.With(zap.String("path", c.Request.URL.Path))

		tokenString, ok := extractBearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := verifier(c.Request.Context(), tokenString)
		if err != nil {
			log.Warn("Token verification failed on optional-auth route", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized: Invalid token"})
			return
		}

		attachClaims(c, claims)
		c.Next()
	}
}

// RequireRole guards a route group behind a role carried in the JWT claims.
// Must run after RequireAuth.
func RequireRole(role string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := models.GetRolesFromContext(c.Request.Context())
		if !ok || !hasRole(roles, role) {
			userID, _ := models.GetUserIDFromContext(c.Request.Context())
			logger.Warn("User does not have required role",
				zap.String("userID", userID.String()),
				zap.Strings("userRoles", roles),
				zap.String("requiredRole", role))
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "Forbidden: Insufficient permissions"})
			return
		}
		c.Next()
	}
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
