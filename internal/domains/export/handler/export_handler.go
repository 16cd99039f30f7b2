package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/export"
	"writerdesk-backend/internal/shared/middleware"
	"writerdesk-backend/internal/shared/ownership"
	"writerdesk-backend/internal/shared/response"
	"writerdesk-backend/pkg/logger"
)

type ExportHandler struct {
	service export.Service
}

func NewExportHandler(service export.Service) *ExportHandler {
	return &ExportHandler{service: service}
}

// Start handles POST /projects/:id/exports
func (h *ExportHandler) Start(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	var req export.ExportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Start(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, result)
}

// ListByProject handles GET /projects/:id/exports
func (h *ExportHandler) ListByProject(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	result, err := h.service.ListByProject(c.Request.Context(), userID, projectID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Get handles GET /exports/:id
func (h *ExportHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	exportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid export id")
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID, exportID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Download handles GET /exports/:id/download
func (h *ExportHandler) Download(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	exportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid export id")
		return
	}

	result, err := h.service.Download(c.Request.Context(), userID, exportID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *ExportHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", validationErrs)
	case errors.Is(err, export.ErrUnsupportedType):
		response.BadRequest(c, "Unsupported export type")
	case errors.Is(err, export.ErrExportNotReady):
		response.Conflict(c, "Export is not completed yet")
	case errors.Is(err, ownership.ErrNotFound), errors.Is(err, export.ErrExportNotFound):
		response.NotFound(c, "Export not found")
	case errors.Is(err, ownership.ErrNotOwner):
		response.Forbidden(c, "You do not own this resource")
	default:
		logger.Error("export handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
