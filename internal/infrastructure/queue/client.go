package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"writerdesk-backend/internal/shared"
)

// ExportRenderPayload is the payload for export rendering tasks
type ExportRenderPayload struct {
	ExportID uuid.UUID `json:"export_id"`
}

// Client enqueues background tasks
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// EnqueueExportRender schedules rendering for a pending export
func (c *Client) EnqueueExportRender(ctx context.Context, exportID uuid.UUID) error {
	payload, err := json.Marshal(ExportRenderPayload{ExportID: exportID})
	if err != nil {
		return fmt.Errorf("marshal export payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeExportRender, payload)

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueExport),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue export render: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
