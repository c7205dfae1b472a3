package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"schedo/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response. Clarification outcomes are
// carried here too: the request itself succeeded even when the pipeline
// asks for better input.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates backend-fault errors to HTTP status codes
// and error codes. Recoverable input errors never reach this mapping;
// they become clarification payloads upstream.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrEngineUnavailable):
		return http.StatusServiceUnavailable, "ENGINE_UNAVAILABLE", "text acquisition engine is not available"
	case errors.Is(err, domain.ErrAuth):
		return http.StatusServiceUnavailable, "BACKEND_AUTH_ERROR", "backend authentication is misconfigured"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "BACKEND_TRANSPORT_ERROR", "backend request failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError logs server-side faults and writes the mapped error
// response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
