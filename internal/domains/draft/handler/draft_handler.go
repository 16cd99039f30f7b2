package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/draft"
	"writerdesk-backend/internal/shared/middleware"
	"writerdesk-backend/internal/shared/ownership"
	"writerdesk-backend/internal/shared/response"
	"writerdesk-backend/pkg/logger"
)

type DraftHandler struct {
	service draft.Service
}

func NewDraftHandler(service draft.Service) *DraftHandler {
	return &DraftHandler{service: service}
}

// Create handles POST /scenes/:id/drafts
func (h *DraftHandler) Create(c *gin.Context) {
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

	var req draft.DraftCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, sceneID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListByScene handles GET /scenes/:id/drafts
func (h *DraftHandler) ListByScene(c *gin.Context) {
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

// Get handles GET /drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
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

	result, err := h.service.Get(c.Request.Context(), userID, draftID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /drafts/:id
func (h *DraftHandler) Delete(c *gin.Context) {
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

	if err := h.service.Delete(c.Request.Context(), userID, draftID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Draft deleted"})
}

func (h *DraftHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", validationErrs)
	case errors.Is(err, ownership.ErrNotFound), errors.Is(err, draft.ErrDraftNotFound):
		response.NotFound(c, "Draft not found")
	case errors.Is(err, ownership.ErrNotOwner):
		response.Forbidden(c, "You do not own this resource")
	default:
		logger.Error("draft handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
