package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"writerdesk-backend/internal/domains/export"
	"writerdesk-backend/internal/infrastructure/queue"
	"writerdesk-backend/pkg/logger"
)

// RenderHandler processes export:render tasks: it assembles the
// manuscript, renders it and uploads the artifact.
type RenderHandler struct {
	repo      export.Repository
	storage   export.ArtifactStorage
	renderers export.RendererRegistry
}

func NewRenderHandler(repo export.Repository, storage export.ArtifactStorage, renderers export.RendererRegistry) *RenderHandler {
	return &RenderHandler{repo: repo, storage: storage, renderers: renderers}
}

func (h *RenderHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ExportRenderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal export payload: %w", err)
	}

	e, err := h.repo.FindByID(ctx, payload.ExportID)
	if err != nil {
		return err
	}
	if e.Status == export.StatusCompleted {
		// Redelivered task for work already done
		return nil
	}

	renderer, ok := h.renderers[e.ExportType]
	if !ok {
		// No renderer will ever appear for this row, do not retry
		if err := h.repo.MarkFailed(ctx, e.ID, "unsupported export type"); err != nil {
			return err
		}
		return nil
	}

	if err := h.render(ctx, e, renderer); err != nil {
		if markErr := h.repo.MarkFailed(ctx, e.ID, err.Error()); markErr != nil {
			logger.Error("mark export failed", markErr)
		}
		return err
	}

	logger.Info("export rendered", map[string]interface{}{
		"export_id":   e.ID.String(),
		"project_id":  e.ProjectID.String(),
		"export_type": e.ExportType,
	})

	return nil
}

func (h *RenderHandler) render(ctx context.Context, e *export.Export, renderer export.Renderer) error {
	manuscript, err := h.repo.Manuscript(ctx, e)
	if err != nil {
		return fmt.Errorf("assemble manuscript: %w", err)
	}

	data, err := renderer.Render(ctx, manuscript)
	if err != nil {
		return fmt.Errorf("render manuscript: %w", err)
	}

	e.FileName = fmt.Sprintf("%s.%s", e.ID, renderer.Extension())
	url, err := h.storage.Upload(ctx, export.ArtifactKey(e), data, renderer.ContentType())
	if err != nil {
		return fmt.Errorf("upload artifact: %w", err)
	}

	return h.repo.MarkCompleted(ctx, e.ID, e.FileName, url)
}
