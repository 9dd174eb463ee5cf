package routes

import (
	"paintbuddy/internal/adapter/http/handlers"
	"paintbuddy/internal/adapter/http/middleware"
	"paintbuddy/internal/usecase"

	"github.com/gin-gonic/gin"
)

const PathAdmin = "/admin"

func addAdminRoutes(rg *gin.RouterGroup, adminHandler *handlers.AdminHandler, auth usecase.IAuthUseCase) {
	admin := rg.Group(PathAdmin, middleware.RequireAuth(auth), middleware.RequireAdmin())
	{
		admin.GET("/estimates", adminHandler.ListEstimates)
		admin.GET("/estimates/:id", adminHandler.GetEstimate)
	}
}
