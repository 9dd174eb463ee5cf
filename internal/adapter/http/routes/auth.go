package routes

import (
	"paintbuddy/internal/adapter/http/handlers"
	"paintbuddy/internal/adapter/http/middleware"
	"paintbuddy/internal/usecase"

	"github.com/gin-gonic/gin"
)

const PathAuth = "/auth"

func addAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, auth usecase.IAuthUseCase) {
	group := rg.Group(PathAuth)
	{
		group.POST("/register", authHandler.Register)
		group.POST("/login", authHandler.Login)
		// GET serves the emailed link, POST serves the frontend.
		group.GET("/verify", authHandler.VerifyEmail)
		group.POST("/verify", authHandler.VerifyEmail)
		group.POST("/google", authHandler.GoogleSignIn)
		group.POST("/forgot-password", authHandler.ForgotPassword)
		group.POST("/reset", authHandler.ResetPassword)

		group.GET("/me", middleware.RequireAuth(auth), authHandler.Me)
	}
}
