// internal/handlers/pricing/pricing_handler.go
package pricing

import (
	"net/http"

	"mealbox-service/internal/domain/pricing"
	"mealbox-service/internal/middleware"
	"mealbox-service/internal/pkg/response"
	service "mealbox-service/internal/service/pricing"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingService *service.PricingService
}

func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// Quote prices the submitted cart. Student eligibility comes from the
// caller's token, never from the request body, so a guest cannot claim the
// student rate by editing the payload.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req pricing.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	req.StudentEligibility = middleware.StudentEligibility(c)

	result, err := h.pricingService.Quote(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to price cart", err)
		return
	}

	response.Success(c, http.StatusOK, "cart priced", result)
}
