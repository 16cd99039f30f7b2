package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"writerdesk-backend/internal/shared/middleware"
	"writerdesk-backend/internal/shared/response"
	"writerdesk-backend/pkg/container"
	"writerdesk-backend/pkg/logger"
)

// SetupRouter wires the middleware stack and every route group
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)

		auth := v1.Group("")
		auth.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			setupUserRoutes(auth, c)
			setupProjectRoutes(auth, c)
			setupChapterRoutes(auth, c)
			setupSceneRoutes(auth, c)
			setupDraftRoutes(auth, c)
			setupAnnotationRoutes(auth, c)
			setupAutosaveRoutes(auth, c)
			setupExportRoutes(auth, c)
		}
	}

	return router
}

func setupAuthRoutes(rg *gin.RouterGroup, c *container.Container) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
	}
}

func setupUserRoutes(rg *gin.RouterGroup, c *container.Container) {
	rg.GET("/users/me", c.UserHandler.GetProfile)
}

func setupProjectRoutes(rg *gin.RouterGroup, c *container.Container) {
	projects := rg.Group("/projects")
	{
		projects.POST("", c.ProjectHandler.Create)
		projects.GET("", c.ProjectHandler.List)
		projects.GET("/:id", c.ProjectHandler.Get)
		projects.PUT("/:id", c.ProjectHandler.Update)
		projects.DELETE("/:id", c.ProjectHandler.Delete)
		projects.GET("/:id/timeline", c.ProjectHandler.Timeline)

		projects.POST("/:id/chapters", c.ChapterHandler.Create)
		projects.GET("/:id/chapters", c.ChapterHandler.ListByProject)
		projects.PUT("/:id/chapters/reorder", c.ChapterHandler.Reorder)

		projects.POST("/:id/exports", c.ExportHandler.Start)
		projects.GET("/:id/exports", c.ExportHandler.ListByProject)
	}
}

func setupChapterRoutes(rg *gin.RouterGroup, c *container.Container) {
	chapters := rg.Group("/chapters")
	{
		chapters.GET("/:id", c.ChapterHandler.Get)
		chapters.PUT("/:id", c.ChapterHandler.Update)
		chapters.DELETE("/:id", c.ChapterHandler.Delete)

		chapters.POST("/:id/scenes", c.SceneHandler.Create)
		chapters.GET("/:id/scenes", c.SceneHandler.ListByChapter)
		chapters.PUT("/:id/scenes/reorder", c.SceneHandler.Reorder)
	}
}

func setupSceneRoutes(rg *gin.RouterGroup, c *container.Container) {
	scenes := rg.Group("/scenes")
	{
		scenes.GET("/:id", c.SceneHandler.Get)
		scenes.PUT("/:id", c.SceneHandler.Update)
		scenes.DELETE("/:id", c.SceneHandler.Delete)
		scenes.POST("/:id/toggle-draft", c.SceneHandler.ToggleDraftMode)
		scenes.POST("/:id/publish-draft", c.SceneHandler.PublishDraft)

		scenes.POST("/:id/drafts", c.DraftHandler.Create)
		scenes.GET("/:id/drafts", c.DraftHandler.ListByScene)

		scenes.POST("/:id/annotations", c.AnnotationHandler.CreateForScene)
		scenes.GET("/:id/annotations", c.AnnotationHandler.ListByScene)
	}
}

func setupDraftRoutes(rg *gin.RouterGroup, c *container.Container) {
	drafts := rg.Group("/drafts")
	{
		drafts.GET("/:id", c.DraftHandler.Get)
		drafts.DELETE("/:id", c.DraftHandler.Delete)

		drafts.POST("/:id/annotations", c.AnnotationHandler.CreateForDraft)
		drafts.GET("/:id/annotations", c.AnnotationHandler.ListByDraft)
	}
}

func setupAnnotationRoutes(rg *gin.RouterGroup, c *container.Container) {
	annotations := rg.Group("/annotations")
	{
		annotations.PUT("/:id", c.AnnotationHandler.Update)
		annotations.DELETE("/:id", c.AnnotationHandler.Delete)
		annotations.POST("/:id/resolve", c.AnnotationHandler.Resolve)
	}
}

func setupAutosaveRoutes(rg *gin.RouterGroup, c *container.Container) {
	autosaves := rg.Group("/autosave")
	{
		autosaves.POST("", c.AutosaveHandler.Save)
		autosaves.GET("/:project_id/versions", c.AutosaveHandler.ListVersions)
		autosaves.GET("/:project_id/latest", c.AutosaveHandler.Latest)
	}
}

func setupExportRoutes(rg *gin.RouterGroup, c *container.Container) {
	exports := rg.Group("/exports")
	{
		exports.GET("/:id", c.ExportHandler.Get)
		exports.GET("/:id/download", c.ExportHandler.Download)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbErr := c.DB.HealthCheck(ctx.Request.Context())
		cacheErr := c.Cache.Ping(ctx.Request.Context())

		status, body := healthStatus(dbErr, cacheErr, c.Config.App.Version)
		if status != http.StatusOK {
			ctx.JSON(status, body)
			return
		}

		response.Success(ctx, http.StatusOK, body)
	}
}

// healthStatus marks failing components as unavailable without echoing
// internal error text into the response; the details go to the log.
func healthStatus(dbErr, cacheErr error, version string) (int, gin.H) {
	checks := gin.H{"database": "ok", "cache": "ok"}
	healthy := true

	if dbErr != nil {
		logger.Error("database health check failed", dbErr)
		checks["database"] = "unavailable"
		healthy = false
	}
	if cacheErr != nil {
		logger.Error("cache health check failed", cacheErr)
		checks["cache"] = "unavailable"
		healthy = false
	}

	if !healthy {
		return http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": checks}
	}

	return http.StatusOK, gin.H{
		"status":  "healthy",
		"version": version,
		"checks":  checks,
	}
}
