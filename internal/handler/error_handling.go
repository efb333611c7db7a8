package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"answerhub/internal/models"
)

// handleServiceError maps service-layer errors onto HTTP responses.
// Authorization failures deliberately share the 401 shape of the original
// contract and never reveal whether the record exists under another owner.
// Unexpected errors surface as a generic message; the detail stays in the logs.
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrPromptTooLong):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: "Prompt text exceeds the maximum length of 1000 characters"}
	case errors.Is(err, models.ErrPromptNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "Input prompt not found"}
	case errors.Is(err, models.ErrNotOwner):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Error: "You don't own this prompt"}
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Error: "Authentication required"}
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: "Invalid input data"}
	default:
		logger.Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
