package handlers

import (
	"errors"
	"net/http"

	request "paintbuddy/internal/adapter/http/dto/request"
	response "paintbuddy/internal/adapter/http/dto/response"
	"paintbuddy/internal/adapter/http/middleware"
	"paintbuddy/internal/usecase"
	"paintbuddy/internal/usecase/interfaces"
	"paintbuddy/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)

// EstimateHandler handles quote submissions and the quota endpoint.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// SubmitEstimate runs the full pipeline for one quote form submission:
// validation, quota gate, price band, generated explanation, persistence.
func (h *EstimateHandler) SubmitEstimate(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized).ToHTTPError())
		return
	}

	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	result, err := h.usecase.SubmitEstimate(c.Request.Context(), claims.UserID, claims.IsAdmin(), payload.ToInput())
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, response.ValidationErrorResponse{
				Error:  "Please fix the highlighted fields",
				Fields: vErr.Fields,
			})
			return
		}
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	resp := response.SubmissionResponse{
		Estimate: response.FromEstimate(result.Record.Estimate),
		Saved:    !result.SaveFailed,
	}
	if result.SaveFailed {
		resp.StorageError = "Your estimate could not be saved, but the quote below is still valid."
	} else {
		resp.ID = result.Record.ID
	}
	if result.Remaining >= 0 {
		remaining := result.Remaining
		resp.RemainingSubmissions = &remaining
	}

	c.JSON(http.StatusCreated, resp)
}

// Quota reports how many submissions the caller has left.
func (h *EstimateHandler) Quota(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized).ToHTTPError())
		return
	}

	status, err := h.usecase.Quota(c.Request.Context(), claims.UserID, claims.IsAdmin())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, status)
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrQuotaExceeded):
		return pkg.NewDomainErrorSimple("QUOTA_EXCEEDED", "You have used all of your free estimates", http.StatusTooManyRequests)
	case errors.Is(err, usecase.ErrRecordNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, interfaces.ErrGeneratorRateLimited):
		return pkg.NewDomainErrorSimple("GENERATOR_BUSY", "The estimate service is busy, please try again shortly", http.StatusTooManyRequests)
	case errors.Is(err, interfaces.ErrGeneratorNotConfigured):
		return pkg.NewDomainErrorSimple("GENERATOR_UNAVAILABLE", "Estimates are temporarily unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, interfaces.ErrGeneratorBadResponse):
		return pkg.NewDomainErrorSimple("GENERATOR_BAD_RESPONSE", "The estimate service returned an unusable answer", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
