package container

import (
	"context"
	"fmt"
	"time"

	"writerdesk-backend/internal/config"
	infraCache "writerdesk-backend/internal/infrastructure/cache"
	"writerdesk-backend/internal/infrastructure/database"
	"writerdesk-backend/internal/infrastructure/queue"
	"writerdesk-backend/internal/infrastructure/storage"
	"writerdesk-backend/internal/shared/ownership"
	"writerdesk-backend/pkg/cache"
	"writerdesk-backend/pkg/jwt"
	"writerdesk-backend/pkg/logger"

	"writerdesk-backend/internal/domains/annotation"
	annotationHandler "writerdesk-backend/internal/domains/annotation/handler"
	annotationRepo "writerdesk-backend/internal/domains/annotation/repository"
	annotationService "writerdesk-backend/internal/domains/annotation/service"
	"writerdesk-backend/internal/domains/autosave"
	autosaveHandler "writerdesk-backend/internal/domains/autosave/handler"
	autosaveRepo "writerdesk-backend/internal/domains/autosave/repository"
	autosaveService "writerdesk-backend/internal/domains/autosave/service"
	"writerdesk-backend/internal/domains/chapter"
	chapterHandler "writerdesk-backend/internal/domains/chapter/handler"
	chapterRepo "writerdesk-backend/internal/domains/chapter/repository"
	chapterService "writerdesk-backend/internal/domains/chapter/service"
	"writerdesk-backend/internal/domains/draft"
	draftHandler "writerdesk-backend/internal/domains/draft/handler"
	draftRepo "writerdesk-backend/internal/domains/draft/repository"
	draftService "writerdesk-backend/internal/domains/draft/service"
	"writerdesk-backend/internal/domains/export"
	exportHandler "writerdesk-backend/internal/domains/export/handler"
	exportRepo "writerdesk-backend/internal/domains/export/repository"
	exportService "writerdesk-backend/internal/domains/export/service"
	"writerdesk-backend/internal/domains/project"
	projectHandler "writerdesk-backend/internal/domains/project/handler"
	projectRepo "writerdesk-backend/internal/domains/project/repository"
	projectService "writerdesk-backend/internal/domains/project/service"
	"writerdesk-backend/internal/domains/scene"
	sceneHandler "writerdesk-backend/internal/domains/scene/handler"
	sceneRepo "writerdesk-backend/internal/domains/scene/repository"
	sceneService "writerdesk-backend/internal/domains/scene/service"
	"writerdesk-backend/internal/domains/user"
	userHandler "writerdesk-backend/internal/domains/user/handler"
	userRepo "writerdesk-backend/internal/domains/user/repository"
	userService "writerdesk-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph for the API process.
// Everything in it is a singleton wired once at startup.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Queue      *queue.Client
	Storage    *storage.MinIOStorage
	Resolver   *ownership.Resolver

	UserRepo       user.Repository
	ProjectRepo    project.Repository
	ChapterRepo    chapter.Repository
	SceneRepo      scene.Repository
	DraftRepo      draft.Repository
	AnnotationRepo annotation.Repository
	AutosaveRepo   autosave.Repository
	ExportRepo     export.Repository

	UserService       user.Service
	ProjectService    project.Service
	ChapterService    chapter.Service
	SceneService      scene.Service
	DraftService      draft.Service
	AnnotationService annotation.Service
	AutosaveService   autosave.Service
	ExportService     export.Service

	UserHandler       *userHandler.UserHandler
	ProjectHandler    *projectHandler.ProjectHandler
	ChapterHandler    *chapterHandler.ChapterHandler
	SceneHandler      *sceneHandler.SceneHandler
	DraftHandler      *draftHandler.DraftHandler
	AnnotationHandler *annotationHandler.AnnotationHandler
	AutosaveHandler   *autosaveHandler.AutosaveHandler
	ExportHandler     *exportHandler.ExportHandler
}

// NewContainer builds the dependency graph in order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = minioStorage

	c.Queue = queue.NewClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.ExpiryHours)*time.Hour,
	)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.ProjectRepo = projectRepo.NewPostgresRepository(pool)
	c.ChapterRepo = chapterRepo.NewPostgresRepository(pool)
	c.SceneRepo = sceneRepo.NewPostgresRepository(pool)
	c.DraftRepo = draftRepo.NewPostgresRepository(pool)
	c.AnnotationRepo = annotationRepo.NewPostgresRepository(pool)
	c.AutosaveRepo = autosaveRepo.NewPostgresRepository(pool)
	c.ExportRepo = exportRepo.NewPostgresRepository(pool)

	c.Resolver = ownership.NewResolver(ownership.NewPostgresStore(pool))
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager,
		time.Duration(c.Config.JWT.ExpiryHours)*time.Hour)
	c.ProjectService = projectService.NewProjectService(c.ProjectRepo, c.Resolver)
	c.ChapterService = chapterService.NewChapterService(c.ChapterRepo, c.Resolver)
	c.SceneService = sceneService.NewSceneService(c.SceneRepo, c.Resolver)
	c.DraftService = draftService.NewDraftService(c.DraftRepo, c.Resolver)
	c.AnnotationService = annotationService.NewAnnotationService(c.AnnotationRepo, c.Resolver)
	c.AutosaveService = autosaveService.NewAutosaveService(c.AutosaveRepo, c.Resolver, c.Cache, c.Config.Autosave)
	c.ExportService = exportService.NewExportService(c.ExportRepo, c.Resolver, c.Queue, c.Storage, export.DefaultRenderers())
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ProjectHandler = projectHandler.NewProjectHandler(c.ProjectService)
	c.ChapterHandler = chapterHandler.NewChapterHandler(c.ChapterService)
	c.SceneHandler = sceneHandler.NewSceneHandler(c.SceneService)
	c.DraftHandler = draftHandler.NewDraftHandler(c.DraftService)
	c.AnnotationHandler = annotationHandler.NewAnnotationHandler(c.AnnotationService)
	c.AutosaveHandler = autosaveHandler.NewAutosaveHandler(c.AutosaveService)
	c.ExportHandler = exportHandler.NewExportHandler(c.ExportService)
}

// Shutdown closes infrastructure connections in reverse order
func (c *Container) Shutdown() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}

	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close cache", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}

	logger.Info("container shut down", map[string]interface{}{})
}
