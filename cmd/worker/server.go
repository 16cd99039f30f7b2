package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"writerdesk-backend/internal/config"
	"writerdesk-backend/internal/domains/export"
	exportJob "writerdesk-backend/internal/domains/export/job"
	exportRepo "writerdesk-backend/internal/domains/export/repository"
	"writerdesk-backend/internal/infrastructure/database"
	"writerdesk-backend/internal/infrastructure/queue"
	"writerdesk-backend/internal/infrastructure/storage"
	"writerdesk-backend/internal/shared"
	"writerdesk-backend/pkg/logger"
)

// Run wires the worker's slice of the dependency graph and processes
// export tasks until a shutdown signal arrives.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("failed to load database config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		cancel()
		log.Fatalf("failed to connect to database: %v", err)
	}
	cancel()
	defer db.Close()

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	repo := exportRepo.NewPostgresRepository(db.Pool)
	renderers := export.DefaultRenderers()

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeExportRender, exportJob.NewRenderHandler(repo, minioStorage, renderers))
	mux.Handle(shared.TypeExportReapStale, exportJob.NewReapStaleHandler(repo))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				shared.QueueExport:      6,
				shared.QueueMaintenance: 1,
			},
		},
	)

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		log.Fatalf("failed to register maintenance jobs: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer scheduler.Shutdown()

	if err := srv.Start(mux); err != nil {
		log.Fatalf("failed to start worker: %v", err)
	}

	logger.Info("worker started", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker", map[string]interface{}{})
	srv.Shutdown()
}
