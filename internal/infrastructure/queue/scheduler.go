package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"writerdesk-backend/internal/shared"
	"writerdesk-backend/pkg/logger"
)

// Scheduler registers periodic maintenance jobs
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: redisDB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterMaintenanceJobs wires all cron entries
func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerReapStaleExportsJob()
}

// Exports stuck in pending (worker crash, lost task) are failed after an
// hour so clients stop polling them.
func (s *Scheduler) registerReapStaleExportsJob() error {
	payload, err := json.Marshal(struct{}{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeExportReapStale, payload)

	_, err = s.scheduler.Register(
		"0 * * * *", // hourly
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ReapStaleExports job", err)
		return err
	}

	logger.Info("Registered ReapStaleExports: hourly", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
