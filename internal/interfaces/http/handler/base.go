// Package handler contains the gin HTTP handlers for the API surface.
package handler

import (
	"errors"
	"net/http"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ownerID extracts the authenticated user, aborting with 401 when absent.
// Handlers behind RequireAuth never hit the abort path; it guards against
// misordered route wiring.
func ownerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.GetAuthUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors onto HTTP statuses. Anything that is not a
// domain error is logged and reported as a 500 without leaking internals.
func handleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.StatusForCode(domainErr.Code), dto.NewErrorResponse(domainErr.Message))
		return
	}

	logger.L(c.Request.Context()).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
}

// publicErrorMessage returns a message safe to show clients. Domain errors
// carry user-facing text; anything else is masked.
func publicErrorMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Internal server error"
}

// handleBindError reports a request-body binding failure with field details
func handleBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest,
		dto.NewValidationErrorResponse("Validation failed", middleware.FormatValidationErrors(err)))
}

// parseUUIDParam parses a path parameter as a UUID, aborting with 400 on
// failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}
