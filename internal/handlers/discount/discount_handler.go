// internal/handlers/discount/discount_handler.go
package discount

import (
	"net/http"

	"mealbox-service/internal/domain/discount"
	xerrors "mealbox-service/internal/pkg/errors"
	"mealbox-service/internal/pkg/response"
	service "mealbox-service/internal/service/discount"

	"github.com/gin-gonic/gin"
)

type DiscountHandler struct {
	discountService *service.DiscountService
}

func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{
		discountService: discountService,
	}
}

// CreateDiscount creates a new duration discount (admin only)
func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var req discount.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.discountService.CreateDiscount(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to create discount", err)
		return
	}

	response.Success(c, http.StatusCreated, "discount created successfully", result)
}

// UpdateDiscount updates a duration discount (admin only)
func (h *DiscountHandler) UpdateDiscount(c *gin.Context) {
	id := c.Param("id")

	var req discount.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.discountService.UpdateDiscount(c.Request.Context(), id, &req)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "discount not found")
			return
		}
		response.Error(c, http.StatusBadRequest, "failed to update discount", err)
		return
	}

	response.Success(c, http.StatusOK, "discount updated successfully", result)
}

// DeleteDiscount removes a duration discount (admin only)
func (h *DiscountHandler) DeleteDiscount(c *gin.Context) {
	id := c.Param("id")

	if err := h.discountService.DeleteDiscount(c.Request.Context(), id); err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "discount not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete discount", err)
		return
	}

	response.Success(c, http.StatusOK, "discount deleted successfully", nil)
}

// GetDiscount retrieves a duration discount (admin only)
func (h *DiscountHandler) GetDiscount(c *gin.Context) {
	id := c.Param("id")

	result, err := h.discountService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "discount not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get discount", err)
		return
	}

	response.Success(c, http.StatusOK, "discount retrieved", result)
}

// ListDiscounts lists the discount catalog (admin only)
func (h *DiscountHandler) ListDiscounts(c *gin.Context) {
	result, err := h.discountService.ListDiscounts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list discounts", err)
		return
	}

	response.Success(c, http.StatusOK, "discounts retrieved", result)
}
