package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/chapter"
	"writerdesk-backend/internal/shared/middleware"
	"writerdesk-backend/internal/shared/ownership"
	"writerdesk-backend/internal/shared/response"
	"writerdesk-backend/pkg/logger"
)

type ChapterHandler struct {
	service chapter.Service
}

func NewChapterHandler(service chapter.Service) *ChapterHandler {
	return &ChapterHandler{service: service}
}

// Create handles POST /projects/:id/chapters
func (h *ChapterHandler) Create(c *gin.Context) {
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

	var req chapter.ChapterCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListByProject handles GET /projects/:id/chapters
func (h *ChapterHandler) ListByProject(c *gin.Context) {
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

// Get handles GET /chapters/:id
func (h *ChapterHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid chapter id")
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID, chapterID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Update handles PUT /chapters/:id
func (h *ChapterHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid chapter id")
		return
	}

	var req chapter.ChapterUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, chapterID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /chapters/:id
func (h *ChapterHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid chapter id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, chapterID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Chapter deleted"})
}

// Reorder handles PUT /projects/:id/chapters/reorder
func (h *ChapterHandler) Reorder(c *gin.Context) {
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

	var req chapter.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Reorder(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *ChapterHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", validationErrs)
	case errors.Is(err, chapter.ErrInvalidReorder):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ownership.ErrNotFound), errors.Is(err, chapter.ErrChapterNotFound):
		response.NotFound(c, "Chapter not found")
	case errors.Is(err, ownership.ErrNotOwner):
		response.Forbidden(c, "You do not own this resource")
	default:
		logger.Error("chapter handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
