package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"writerdesk-backend/internal/domains/export"
	"writerdesk-backend/pkg/logger"
)

// StaleThreshold is how long an export may stay pending before the
// reaper fails it
const StaleThreshold = time.Hour

// ReapStaleHandler processes the scheduled export:reap_stale task
type ReapStaleHandler struct {
	repo export.Repository
}

func NewReapStaleHandler(repo export.Repository) *ReapStaleHandler {
	return &ReapStaleHandler{repo: repo}
}

func (h *ReapStaleHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	reaped, err := h.repo.ReapStale(ctx, time.Now().Add(-StaleThreshold))
	if err != nil {
		return err
	}

	if reaped > 0 {
		logger.Info("reaped stale exports", map[string]interface{}{"count": reaped})
	}

	return nil
}
