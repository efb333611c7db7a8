package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"answerhub/internal/auth"
	"answerhub/internal/models"
)

// Router wires the input prompt routes onto a gin engine.
type Router struct {
	handler  *InputPromptHandler
	verifier *auth.JWTVerifier
	logger   *zap.Logger
}

// NewRouter creates a Router.
func NewRouter(h *InputPromptHandler, verifier *auth.JWTVerifier, logger *zap.Logger) *Router {
	return &Router{
		handler:  h,
		verifier: verifier,
		logger:   logger.Named("Router"),
	}
}

// RegisterRoutes registers all input prompt routes under the given group.
func (r *Router) RegisterRoutes(api *gin.RouterGroup) {
	requireAuth := RequireAuth(r.verifier.VerifyToken, r.logger)
	optionalAuth := OptionalAuth(r.verifier.VerifyToken, r.logger)

	prompts := api.Group("/input_prompt")
	{
		prompts.GET("", requireAuth, r.handler.ListInputPrompts)
		prompts.GET("/public", optionalAuth, r.handler.ListPublicInputPrompts)
		prompts.POST("/create", optionalAuth, r.handler.CreateInputPrompt)
		prompts.GET("/:id", optionalAuth, r.handler.GetInputPrompt)
		prompts.PATCH("/:id", requireAuth, r.handler.UpdateInputPrompt)
		prompts.DELETE("/:id", requireAuth, r.handler.DeleteInputPrompt)
	}

	admin := api.Group("/admin/input_prompt", requireAuth, RequireRole(models.RoleAdmin, r.logger))
	{
		admin.GET("", r.handler.ListAllInputPrompts)
	}
}
