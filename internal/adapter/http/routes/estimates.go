package routes

import (
	"paintbuddy/internal/adapter/http/handlers"
	"paintbuddy/internal/adapter/http/middleware"
	"paintbuddy/internal/usecase"

	"github.com/gin-gonic/gin"
)

const PathEstimates = "/estimates"

// addEstimateRoutes mounts the customer-facing estimate endpoints. Both
// require a verified account; unverified sign-ins get a 403 until they
// follow the email link.
func addEstimateRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler, auth usecase.IAuthUseCase) {
	estimates := rg.Group(PathEstimates, middleware.RequireAuth(auth), middleware.RequireVerified())
	{
		estimates.POST("", estimateHandler.SubmitEstimate)
		estimates.GET("/quota", estimateHandler.Quota)
	}
}
