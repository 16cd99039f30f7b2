package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"writerdesk-backend/pkg/logger"
)

func main() {
	// Production relies on real environment variables; .env is for local runs
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Init(env)

	Serve()
}
