package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"writerdesk-backend/internal/config"
	"writerdesk-backend/internal/domains/autosave"
	"writerdesk-backend/internal/shared/ownership"
	"writerdesk-backend/internal/shared/utils"
	"writerdesk-backend/pkg/cache"
	"writerdesk-backend/pkg/logger"
)

// cachedSnapshot is the Redis fast-path entry for one stream. Its TTL is
// the dedup window, so a hit with a matching hash is always a duplicate.
type cachedSnapshot struct {
	Version *autosave.AutosaveVersion `json:"version"`
	SHA256  string                    `json:"sha256"`
}

type autosaveService struct {
	repo     autosave.Repository
	resolver *ownership.Resolver
	cache    cache.Cache
	cfg      config.AutosaveConfig
}

func NewAutosaveService(repo autosave.Repository, resolver *ownership.Resolver, c cache.Cache, cfg config.AutosaveConfig) autosave.Service {
	return &autosaveService{repo: repo, resolver: resolver, cache: c, cfg: cfg}
}

func (s *autosaveService) Save(ctx context.Context, userID uuid.UUID, req *autosave.AutosaveRequest) (*autosave.SaveResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, req.ProjectID); err != nil {
		return nil, err
	}
	if req.SceneID != nil {
		res, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, *req.SceneID)
		if err != nil {
			return nil, err
		}
		if res.ProjectID != req.ProjectID {
			return nil, autosave.ErrSceneNotInProject
		}
	}

	sum := contentHash(req.Content)
	cacheKey := autosave.StreamKey(req.ProjectID, req.SceneID) + ":last"
	window := time.Duration(s.cfg.DedupWindowSeconds) * time.Second

	// Fast path: the last save for this stream is still inside the dedup
	// window and carries the same content hash, so skip the database.
	var entry cachedSnapshot
	hit, err := s.cache.Get(ctx, cacheKey, &entry)
	if err != nil {
		logger.Error("autosave cache read failed", err)
	} else if hit && entry.SHA256 == sum && entry.Version != nil && entry.Version.Content == req.Content {
		return &autosave.SaveResponse{
			Deduplicated: true,
			Version:      autosave.ToVersionResponse(entry.Version),
		}, nil
	}

	wordCount := utils.CountWords(req.Content)
	if req.WordCount != nil {
		wordCount = *req.WordCount
	}

	result, err := s.repo.Save(ctx, &autosave.AutosaveVersion{
		ProjectID: req.ProjectID,
		SceneID:   req.SceneID,
		Content:   req.Content,
		WordCount: wordCount,
	}, window, s.cfg.MaxVersions)
	if err != nil {
		return nil, err
	}

	// Cache failures never fail the save
	if err := s.cache.Set(ctx, cacheKey, cachedSnapshot{Version: result.Version, SHA256: sum}, window); err != nil {
		logger.Error("autosave cache write failed", err)
	}

	return &autosave.SaveResponse{
		Deduplicated: result.Deduplicated,
		Version:      autosave.ToVersionResponse(result.Version),
	}, nil
}

func (s *autosaveService) ListVersions(ctx context.Context, userID, projectID uuid.UUID, limit int) ([]*autosave.VersionResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	versions, err := s.repo.ListByProject(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*autosave.VersionResponse, 0, len(versions))
	for _, v := range versions {
		responses = append(responses, autosave.ToVersionResponse(v))
	}

	return responses, nil
}

func (s *autosaveService) Latest(ctx context.Context, userID, projectID uuid.UUID) (*autosave.VersionResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	latest, err := s.repo.Latest(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return autosave.ToVersionResponse(latest), nil
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
