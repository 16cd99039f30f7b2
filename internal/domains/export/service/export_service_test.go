package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writerdesk-backend/internal/domains/export"
	"writerdesk-backend/internal/shared/ownership"
)

type grantAllStore struct {
	owner uuid.UUID
}

func (s *grantAllStore) FindOwnerChain(_ context.Context, kind ownership.Kind, id uuid.UUID) (*ownership.Resource, error) {
	return &ownership.Resource{Kind: kind, ID: id, OwnerID: s.owner}, nil
}

type fakeExportRepo struct {
	byID map[uuid.UUID]*export.Export
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{byID: make(map[uuid.UUID]*export.Export)}
}

func (f *fakeExportRepo) Create(_ context.Context, e *export.Export) (*export.Export, error) {
	created := *e
	created.ID = uuid.New()
	created.Status = export.StatusPending
	created.CreatedAt = time.Now()
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeExportRepo) FindByID(_ context.Context, id uuid.UUID) (*export.Export, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, export.ErrExportNotFound
	}
	return e, nil
}

func (f *fakeExportRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*export.Export, error) {
	var out []*export.Export
	for _, e := range f.byID {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExportRepo) MarkCompleted(_ context.Context, id uuid.UUID, fileName, fileURL string) error {
	e, ok := f.byID[id]
	if !ok {
		return export.ErrExportNotFound
	}
	now := time.Now()
	e.Status = export.StatusCompleted
	e.FileName = fileName
	e.FileURL = fileURL
	e.CompletedAt = &now
	return nil
}

func (f *fakeExportRepo) MarkFailed(_ context.Context, id uuid.UUID, message string) error {
	e, ok := f.byID[id]
	if !ok {
		return export.ErrExportNotFound
	}
	e.Status = export.StatusFailed
	e.ErrorMessage = message
	return nil
}

func (f *fakeExportRepo) IncrementDownloadCount(_ context.Context, id uuid.UUID) (*export.Export, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, export.ErrExportNotFound
	}
	e.DownloadCount++
	return e, nil
}

func (f *fakeExportRepo) ReapStale(_ context.Context, cutoff time.Time) (int64, error) {
	var reaped int64
	for _, e := range f.byID {
		if e.Status == export.StatusPending && e.CreatedAt.Before(cutoff) {
			e.Status = export.StatusFailed
			e.ErrorMessage = "export timed out"
			reaped++
		}
	}
	return reaped, nil
}

func (f *fakeExportRepo) Manuscript(_ context.Context, _ *export.Export) (*export.Manuscript, error) {
	return &export.Manuscript{ProjectTitle: "Test"}, nil
}

type fakeEnqueuer struct {
	enqueued []uuid.UUID
	err      error
}

func (f *fakeEnqueuer) EnqueueExportRender(_ context.Context, exportID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, exportID)
	return nil
}

type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.objects[key] = data
	return "http://storage.local/" + key, nil
}

func (f *fakeStorage) Download(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, export.ErrExportNotFound
	}
	return data, nil
}

func newTestService() (export.Service, *fakeExportRepo, *fakeEnqueuer, *fakeStorage, uuid.UUID) {
	owner := uuid.New()
	repo := newFakeExportRepo()
	enqueuer := &fakeEnqueuer{}
	storage := newFakeStorage()
	resolver := ownership.NewResolver(&grantAllStore{owner: owner})
	svc := NewExportService(repo, resolver, enqueuer, storage, export.DefaultRenderers())
	return svc, repo, enqueuer, storage, owner
}

func TestStartCreatesPendingAndEnqueues(t *testing.T) {
	svc, repo, enqueuer, _, owner := newTestService()
	projectID := uuid.New()

	resp, err := svc.Start(context.Background(), owner, projectID, &export.ExportCreateRequest{ExportType: "txt"})
	require.NoError(t, err)

	assert.Equal(t, export.StatusPending, resp.Status)
	assert.Equal(t, projectID, resp.ProjectID)
	require.Len(t, enqueuer.enqueued, 1)
	assert.Equal(t, resp.ID, enqueuer.enqueued[0])

	stored := repo.byID[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "txt", stored.ExportType)
}

func TestStartAcceptsDocumentTypes(t *testing.T) {
	svc, repo, enqueuer, _, owner := newTestService()
	projectID := uuid.New()

	for _, exportType := range []string{"docx", "pdf"} {
		resp, err := svc.Start(context.Background(), owner, projectID, &export.ExportCreateRequest{ExportType: exportType})
		require.NoError(t, err, exportType)

		assert.Equal(t, export.StatusPending, resp.Status)
		assert.Equal(t, exportType, repo.byID[resp.ID].ExportType)
	}
	assert.Len(t, enqueuer.enqueued, 2)
}

func TestStartUnsupportedType(t *testing.T) {
	svc, repo, enqueuer, _, owner := newTestService()

	_, err := svc.Start(context.Background(), owner, uuid.New(), &export.ExportCreateRequest{ExportType: "epub"})

	assert.ErrorIs(t, err, export.ErrUnsupportedType)
	assert.Empty(t, repo.byID)
	assert.Empty(t, enqueuer.enqueued)
}

func TestStartEnqueueFailureMarksFailed(t *testing.T) {
	svc, repo, enqueuer, _, owner := newTestService()
	enqueuer.err = assert.AnError

	_, err := svc.Start(context.Background(), owner, uuid.New(), &export.ExportCreateRequest{ExportType: "txt"})
	require.Error(t, err)

	require.Len(t, repo.byID, 1)
	for _, e := range repo.byID {
		assert.Equal(t, export.StatusFailed, e.Status)
	}
}

func TestDownloadPendingExport(t *testing.T) {
	svc, repo, _, _, owner := newTestService()

	created, err := repo.Create(context.Background(), &export.Export{ProjectID: uuid.New(), ExportType: "txt"})
	require.NoError(t, err)

	_, err = svc.Download(context.Background(), owner, created.ID)
	assert.ErrorIs(t, err, export.ErrExportNotReady)
}

func TestDownloadCompletedExport(t *testing.T) {
	svc, repo, _, storage, owner := newTestService()

	created, err := repo.Create(context.Background(), &export.Export{ProjectID: uuid.New(), ExportType: "txt"})
	require.NoError(t, err)

	fileName := created.ID.String() + ".txt"
	require.NoError(t, repo.MarkCompleted(context.Background(), created.ID, fileName, "http://storage.local/x"))

	key := export.ArtifactKey(repo.byID[created.ID])
	storage.objects[key] = []byte("rendered manuscript")

	result, err := svc.Download(context.Background(), owner, created.ID)
	require.NoError(t, err)

	assert.Equal(t, fileName, result.FileName)
	assert.Equal(t, "text/plain; charset=utf-8", result.ContentType)
	assert.Equal(t, []byte("rendered manuscript"), result.Data)
	assert.Equal(t, 1, repo.byID[created.ID].DownloadCount)
}

func TestGetUnknownExport(t *testing.T) {
	svc, _, _, _, owner := newTestService()

	_, err := svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, export.ErrExportNotFound)
}
