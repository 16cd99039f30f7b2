package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/export"
	"writerdesk-backend/internal/shared/ownership"
)

type exportService struct {
	repo      export.Repository
	resolver  *ownership.Resolver
	enqueuer  export.TaskEnqueuer
	storage   export.ArtifactStorage
	renderers export.RendererRegistry
}

func NewExportService(
	repo export.Repository,
	resolver *ownership.Resolver,
	enqueuer export.TaskEnqueuer,
	storage export.ArtifactStorage,
	renderers export.RendererRegistry,
) export.Service {
	return &exportService{
		repo:      repo,
		resolver:  resolver,
		enqueuer:  enqueuer,
		storage:   storage,
		renderers: renderers,
	}
}

func (s *exportService) Start(ctx context.Context, userID, projectID uuid.UUID, req *export.ExportCreateRequest) (*export.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, ok := s.renderers[req.ExportType]; !ok {
		return nil, export.ErrUnsupportedType
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &export.Export{
		ProjectID:         projectID,
		ExportType:        req.ExportType,
		ChapterRangeStart: req.ChapterRangeStart,
		ChapterRangeEnd:   req.ChapterRangeEnd,
	})
	if err != nil {
		return nil, err
	}

	if err := s.enqueuer.EnqueueExportRender(ctx, created.ID); err != nil {
		// The reaper will fail the orphaned pending row eventually, but
		// surface the broken queue to the caller now.
		if markErr := s.repo.MarkFailed(ctx, created.ID, "failed to enqueue rendering"); markErr != nil {
			return nil, fmt.Errorf("enqueue export: %w", err)
		}
		return nil, fmt.Errorf("enqueue export: %w", err)
	}

	return export.ToResponse(created), nil
}

func (s *exportService) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*export.ExportResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	exports, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	responses := make([]*export.ExportResponse, 0, len(exports))
	for _, e := range exports {
		responses = append(responses, export.ToResponse(e))
	}

	return responses, nil
}

func (s *exportService) Get(ctx context.Context, userID, exportID uuid.UUID) (*export.ExportResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindExport, exportID); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, exportID)
	if err != nil {
		return nil, err
	}

	return export.ToResponse(e), nil
}

func (s *exportService) Download(ctx context.Context, userID, exportID uuid.UUID) (*export.DownloadResult, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindExport, exportID); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, exportID)
	if err != nil {
		return nil, err
	}
	if e.Status != export.StatusCompleted {
		return nil, export.ErrExportNotReady
	}

	data, err := s.storage.Download(ctx, export.ArtifactKey(e))
	if err != nil {
		return nil, fmt.Errorf("download artifact: %w", err)
	}

	if _, err := s.repo.IncrementDownloadCount(ctx, e.ID); err != nil {
		return nil, err
	}

	contentType := "application/octet-stream"
	if renderer, ok := s.renderers[e.ExportType]; ok {
		contentType = renderer.ContentType()
	}

	return &export.DownloadResult{
		FileName:    e.FileName,
		ContentType: contentType,
		Data:        data,
	}, nil
}
