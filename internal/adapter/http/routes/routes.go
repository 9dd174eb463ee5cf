package routes

import (
	"context"
	"fmt"

	_ "paintbuddy/docs" // swagger spec registration
	"paintbuddy/internal/adapter/http/handlers"
	"paintbuddy/internal/adapter/persistence/repository"
	"paintbuddy/internal/infrastructure/config"
	"paintbuddy/internal/infrastructure/database"
	"paintbuddy/internal/infrastructure/genai"
	"paintbuddy/internal/infrastructure/googleauth"
	"paintbuddy/internal/infrastructure/mailer"
	"paintbuddy/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run wires the application together and starts the HTTP server.
func Run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect dynamodb: %w", err)
	}
	awsCfg, err := database.AWSConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	estimateRepo := repository.NewEstimateDynamoRepository(ddb, cfg.EstimatesTable)
	userRepo := repository.NewUserDynamoRepository(ddb, cfg.UsersTable)

	generator := genai.NewGeminiGateway(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout, cfg.GeminiMock, log)
	sesMailer := mailer.NewSESMailer(awsCfg, cfg.SESSender, cfg.VerifyBaseURL, cfg.ResetBaseURL, log)
	googleVerifier := googleauth.NewVerifier(cfg.GoogleClientID)

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, generator, cfg.SubmissionQuota, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, sesMailer, googleVerifier, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminEmails, log)

	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)
	authHandler := handlers.NewAuthHandler(authUseCase)
	adminHandler := handlers.NewAdminHandler(estimateUseCase)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAuthRoutes(v1, authHandler, authUseCase)
	addEstimateRoutes(v1, estimateHandler, authUseCase)
	addAdminRoutes(v1, adminHandler, authUseCase)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("listening", zap.String("addr", addr))
	return router.Run(addr)
}
