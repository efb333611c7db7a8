package models

import "errors"

// Application-wide standard errors
var (
	// Input prompt errors
	ErrPromptNotFound = errors.New("input prompt not found")
	ErrPromptTooLong  = errors.New("prompt text exceeds maximum length")
	ErrNotOwner       = errors.New("caller does not own this prompt")

	// Authentication errors
	ErrUnauthorized   = errors.New("unauthorized") // Authentication required or failed
	ErrForbidden      = errors.New("forbidden")    // Authenticated, but lacks permission
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrInvalidInput   = errors.New("invalid input data")
)
