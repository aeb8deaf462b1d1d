// internal/handlers/coupon/coupon_handler.go
package coupon

import (
	"net/http"

	"mealbox-service/internal/domain/coupon"
	"mealbox-service/internal/middleware"
	xerrors "mealbox-service/internal/pkg/errors"
	"mealbox-service/internal/pkg/response"
	service "mealbox-service/internal/service/coupon"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	couponService *service.CouponService
}

func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// ========== Public ==========

// Validate evaluates a coupon code against the submitted cart state.
// Rejections come back with HTTP 200, valid=false, and the rejection kind --
// a declined coupon is a decision outcome, not a request failure.
func (h *CouponHandler) Validate(c *gin.Context) {
	var req coupon.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	req.Eligibility = middleware.StudentEligibility(c)

	result, err := h.couponService.ValidateCoupon(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to validate coupon", err)
		return
	}

	response.Success(c, http.StatusOK, "coupon evaluated", result)
}

// ========== Admin ==========

// CreateCoupon creates a new coupon (admin only)
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req coupon.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			response.Error(c, http.StatusConflict, "coupon code already exists", err)
			return
		}
		response.Error(c, http.StatusBadRequest, "failed to create coupon", err)
		return
	}

	response.Success(c, http.StatusCreated, "coupon created successfully", result)
}

// UpdateCoupon updates a coupon (admin only)
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id := c.Param("id")

	var req coupon.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.couponService.UpdateCoupon(c.Request.Context(), id, &req)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "coupon not found")
			return
		}
		response.Error(c, http.StatusBadRequest, "failed to update coupon", err)
		return
	}

	response.Success(c, http.StatusOK, "coupon updated successfully", result)
}

// DeleteCoupon removes a coupon (admin only)
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "coupon not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete coupon", err)
		return
	}

	response.Success(c, http.StatusOK, "coupon deleted successfully", nil)
}

// GetCoupon retrieves a coupon by ID (admin only)
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id := c.Param("id")

	result, err := h.couponService.GetCoupon(c.Request.Context(), id)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "coupon not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get coupon", err)
		return
	}

	response.Success(c, http.StatusOK, "coupon retrieved", result)
}

// ListCoupons lists all coupons (admin only)
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	result, err := h.couponService.ListCoupons(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list coupons", err)
		return
	}

	response.Success(c, http.StatusOK, "coupons retrieved", result)
}
