package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/autosave"
	"writerdesk-backend/internal/shared/middleware"
	"writerdesk-backend/internal/shared/ownership"
	"writerdesk-backend/internal/shared/response"
	"writerdesk-backend/pkg/logger"
)

type AutosaveHandler struct {
	service autosave.Service
}

func NewAutosaveHandler(service autosave.Service) *AutosaveHandler {
	return &AutosaveHandler{service: service}
}

// Save handles POST /autosave. A deduplicated save answers 200 with the
// existing version, a fresh save answers 201.
func (h *AutosaveHandler) Save(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req autosave.AutosaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Save(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Deduplicated {
		status = http.StatusOK
	}

	response.Success(c, status, result)
}

// ListVersions handles GET /autosave/:project_id/versions
func (h *AutosaveHandler) ListVersions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.BadRequest(c, "Invalid limit")
			return
		}
	}

	result, err := h.service.ListVersions(c.Request.Context(), userID, projectID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Latest handles GET /autosave/:project_id/latest
func (h *AutosaveHandler) Latest(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	result, err := h.service.Latest(c.Request.Context(), userID, projectID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *AutosaveHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", validationErrs)
	case errors.Is(err, autosave.ErrSceneNotInProject):
		response.BadRequest(c, err.Error())
	case errors.Is(err, autosave.ErrVersionNotFound):
		response.NotFound(c, "No autosave versions yet")
	case errors.Is(err, ownership.ErrNotFound):
		response.NotFound(c, "Resource not found")
	case errors.Is(err, ownership.ErrNotOwner):
		response.Forbidden(c, "You do not own this resource")
	default:
		logger.Error("autosave handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
