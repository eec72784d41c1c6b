package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkthread/backend/internal/domain/inventory"
	"github.com/inkthread/backend/internal/domain/order"
	"github.com/inkthread/backend/internal/domain/shared"
	"github.com/inkthread/backend/internal/interfaces/http/dto"
	"github.com/inkthread/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getUserID extracts the caller's identity resolved by the middleware
func getUserID(c *gin.Context) string {
	return middleware.GetUserID(c)
}

// requireUser returns the caller's identity, answering 401 when missing.
// Routes behind middleware.RequireUser never hit the failure path; this
// keeps handlers safe when wired without it.
func (h *BaseHandler) requireUser(c *gin.Context) (string, bool) {
	userID := getUserID(c)
	if userID == "" {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "User identity is required")
		return "", false
	}
	return userID, true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts service errors to HTTP responses. Domain errors
// map through their code; anything else is an internal error whose
// details stay out of the response.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	// Structured errors carry detail the generic domain message lacks
	var stockErr *inventory.InsufficientStockError
	if errors.As(err, &stockErr) {
		h.Error(c, dto.GetHTTPStatus("INSUFFICIENT_STOCK"), "INSUFFICIENT_STOCK", stockErr.Error())
		return
	}
	var transitionErr *order.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		h.Error(c, dto.GetHTTPStatus("INVALID_TRANSITION"), "INVALID_TRANSITION", transitionErr.Error())
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		h.Error(c, statusCode, domainErr.Code, domainErr.Message)
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
