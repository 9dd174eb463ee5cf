package handlers

import (
	"net/http"
	"strings"

	response "paintbuddy/internal/adapter/http/dto/response"
	"paintbuddy/internal/usecase"
	"paintbuddy/pkg"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the review surface: every stored submission with the
// options the customer entered and the estimate they were shown.
type AdminHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewAdminHandler(uc usecase.IEstimateUseCase) *AdminHandler {
	return &AdminHandler{usecase: uc}
}

func (h *AdminHandler) ListEstimates(c *gin.Context) {
	records, err := h.usecase.ListAll(c.Request.Context())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRecords(records))
}

func (h *AdminHandler) GetEstimate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Estimate id is required", http.StatusBadRequest).ToHTTPError())
		return
	}

	record, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRecord(record))
}
