package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"answerhub/internal/models"
	"answerhub/internal/service"
)

// CreateInputPromptRequest is the POST /input_prompt/create body.
type CreateInputPromptRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Content  string `json:"content" binding:"required"`
	IsPublic *bool  `json:"is_public"`
}

// UpdateInputPromptRequest is the PATCH /input_prompt/:id body.
// The operation is a full replace of the mutable fields, so every field is
// required; omitting a boolean is a request error, not a default.
type UpdateInputPromptRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Active   *bool  `json:"active" binding:"required"`
	IsPublic *bool  `json:"is_public" binding:"required"`
}

// InputPromptHandler handles HTTP requests for input prompts.
type InputPromptHandler struct {
	service service.InputPromptService
	logger  *zap.Logger
}

// NewInputPromptHandler creates a new InputPromptHandler.
func NewInputPromptHandler(s service.InputPromptService, logger *zap.Logger) *InputPromptHandler {
	return &InputPromptHandler{
		service: s,
		logger:  logger.Named("InputPromptHandler"),
	}
}

// callerID returns the authenticated caller's ID, or nil on anonymous requests.
func callerID(c *gin.Context) *uuid.UUID {
	userID, ok := models.GetUserIDFromContext(c.Request.Context())
	if !ok {
		return nil
	}
	return &userID
}

// mustCaller returns the caller with roles for mutation paths.
// Routes using it are guarded by RequireAuth, so a missing identity is a
// programming error surfaced as 401.
func mustCaller(c *gin.Context) (service.Caller, bool) {
	userID, ok := models.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return service.Caller{}, false
	}
	roles, _ := models.GetRolesFromContext(c.Request.Context())
	return service.Caller{ID: userID, Roles: roles}, true
}

func promptIDParam(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid prompt ID"})
		return 0, false
	}
	return id, true
}

// CreateInputPrompt handles POST /input_prompt/create.
// The owner is taken from the caller's identity when one is present.
func (h *InputPromptHandler) CreateInputPrompt(c *gin.Context) {
	var req CreateInputPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed to bind create request", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	prompt, err := h.service.Create(c.Request.Context(), callerID(c), req.Prompt, req.Content, isPublic)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.NewInputPromptSnapshot(prompt))
}

// UpdateInputPrompt handles PATCH /input_prompt/:id.
func (h *InputPromptHandler) UpdateInputPrompt(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := promptIDParam(c)
	if !ok {
		return
	}

	var req UpdateInputPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed to bind update request", zap.Int64("id", id), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	prompt, err := h.service.Update(c.Request.Context(), caller, id, req.Prompt, req.Content, *req.Active, *req.IsPublic)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.NewInputPromptSnapshot(prompt))
}

// DeleteInputPrompt handles DELETE /input_prompt/:id (soft delete).
func (h *InputPromptHandler) DeleteInputPrompt(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := promptIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetInputPrompt handles GET /input_prompt/:id with the visibility filter.
func (h *InputPromptHandler) GetInputPrompt(c *gin.Context) {
	id, ok := promptIDParam(c)
	if !ok {
		return
	}

	prompt, err := h.service.GetByID(c.Request.Context(), callerID(c), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.NewInputPromptSnapshot(prompt))
}

// ListInputPrompts handles GET /input_prompt: the caller's own prompts,
// active ones only unless ?include_inactive=true.
func (h *InputPromptHandler) ListInputPrompts(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"

	prompts, err := h.service.ListByUser(c.Request.Context(), caller.ID, !includeInactive)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.NewInputPromptSnapshots(prompts))
}

// ListPublicInputPrompts handles GET /input_prompt/public.
func (h *InputPromptHandler) ListPublicInputPrompts(c *gin.Context) {
	prompts, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.NewInputPromptSnapshots(prompts))
}

// ListAllInputPrompts handles GET /admin/input_prompt: every prompt,
// regardless of owner or active flag.
func (h *InputPromptHandler) ListAllInputPrompts(c *gin.Context) {
	prompts, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.NewInputPromptSnapshots(prompts))
}
