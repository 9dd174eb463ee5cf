package main

import (
	"log"

	"paintbuddy/internal/adapter/http/routes"
	"paintbuddy/internal/infrastructure/config"
	"paintbuddy/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Paint Buddy API
// @version         1.0
// @description     Instant painting estimates: auth, quote submissions and admin review, backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if err := routes.Run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
