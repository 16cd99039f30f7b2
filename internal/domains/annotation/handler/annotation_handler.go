package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/annotation"
	"writerdesk-backend/internal/shared/middleware"
	"writerdesk-backend/internal/shared/ownership"
	"writerdesk-backend/internal/shared/response"
	"writerdesk-backend/pkg/logger"
)

type AnnotationHandler struct {
	service annotation.Service
}

func NewAnnotationHandler(service annotation.Service) *AnnotationHandler {
	return &AnnotationHandler{service: service}
}

// CreateForScene handles POST /scenes/:id/annotations
func (h *AnnotationHandler) CreateForScene(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	sceneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scene id")
		return
	}

	var req annotation.AnnotationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.CreateForScene(c.Request.Context(), userID, sceneID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// CreateForDraft handles POST /drafts/:id/annotations
func (h *AnnotationHandler) CreateForDraft(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft id")
		return
	}

	var req annotation.AnnotationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.CreateForDraft(c.Request.Context(), userID, draftID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListByScene handles GET /scenes/:id/annotations
func (h *AnnotationHandler) ListByScene(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	sceneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scene id")
		return
	}

	result, err := h.service.ListByScene(c.Request.Context(), userID, sceneID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListByDraft handles GET /drafts/:id/annotations
func (h *AnnotationHandler) ListByDraft(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft id")
		return
	}

	result, err := h.service.ListByDraft(c.Request.Context(), userID, draftID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Update handles PUT /annotations/:id
func (h *AnnotationHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	annotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid annotation id")
		return
	}

	var req annotation.AnnotationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, annotationID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Resolve handles POST /annotations/:id/resolve
func (h *AnnotationHandler) Resolve(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	annotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid annotation id")
		return
	}

	result, err := h.service.Resolve(c.Request.Context(), userID, annotationID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /annotations/:id
func (h *AnnotationHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	annotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid annotation id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, annotationID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Annotation deleted"})
}

func (h *AnnotationHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", validationErrs)
	case errors.Is(err, ownership.ErrNotFound), errors.Is(err, annotation.ErrAnnotationNotFound):
		response.NotFound(c, "Annotation not found")
	case errors.Is(err, ownership.ErrNotOwner):
		response.Forbidden(c, "You do not own this resource")
	default:
		logger.Error("annotation handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
