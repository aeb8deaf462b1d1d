// internal/app/router.go
package app

import (
	couponHandler "mealbox-service/internal/handlers/coupon"
	coverageHandler "mealbox-service/internal/handlers/coverage"
	discountHandler "mealbox-service/internal/handlers/discount"
	pricingHandler "mealbox-service/internal/handlers/pricing"
	refundHandler "mealbox-service/internal/handlers/refund"
	wsHandler "mealbox-service/internal/handlers/websocket"
	"mealbox-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	PricingHandler  *pricingHandler.PricingHandler
	CouponHandler   *couponHandler.CouponHandler
	DiscountHandler *discountHandler.DiscountHandler
	RefundHandler   *refundHandler.RefundHandler
	CoverageHandler *coverageHandler.CoverageHandler
	WSHandler       *wsHandler.WebSocketHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Pricing ====================
	// Anonymous carts are quoted too; a token only unlocks the student
	// discount and student-only coupons.
	pricing := api.Group("/pricing")
	pricing.Use(h.AuthMiddleware.OptionalAuth())
	{
		pricing.POST("/quote", h.PricingHandler.Quote)
	}

	// ==================== Coupons ====================
	coupons := api.Group("/coupons")
	coupons.Use(h.AuthMiddleware.OptionalAuth())
	{
		coupons.POST("/validate", h.CouponHandler.Validate)
	}

	// ==================== Coverage ====================
	coverage := api.Group("/coverage")
	{
		coverage.POST("/check", h.CoverageHandler.Check)
	}

	// ==================== ADMIN ROUTES ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		// Duration Discounts Management
		adminDiscounts := admin.Group("/discounts")
		{
			adminDiscounts.POST("", h.DiscountHandler.CreateDiscount)
			adminDiscounts.GET("", h.DiscountHandler.ListDiscounts)
			adminDiscounts.GET("/:id", h.DiscountHandler.GetDiscount)
			adminDiscounts.PUT("/:id", h.DiscountHandler.UpdateDiscount)
			adminDiscounts.DELETE("/:id", h.DiscountHandler.DeleteDiscount)
		}

		// Coupon Management
		adminCoupons := admin.Group("/coupons")
		{
			adminCoupons.POST("", h.CouponHandler.CreateCoupon)
			adminCoupons.GET("", h.CouponHandler.ListCoupons)
			adminCoupons.GET("/:id", h.CouponHandler.GetCoupon)
			adminCoupons.PUT("/:id", h.CouponHandler.UpdateCoupon)
			adminCoupons.DELETE("/:id", h.CouponHandler.DeleteCoupon)
		}

		// Refund Policy Management
		adminPolicies := admin.Group("/refund-policies")
		{
			adminPolicies.POST("", h.RefundHandler.CreatePolicy)
			adminPolicies.GET("", h.RefundHandler.ListPolicies)
			adminPolicies.GET("/:id", h.RefundHandler.GetPolicy)
			adminPolicies.PUT("/:id", h.RefundHandler.UpdatePolicy)
			adminPolicies.DELETE("/:id", h.RefundHandler.DeletePolicy)
			adminPolicies.POST("/:id/resolve", h.RefundHandler.ResolveRefund)
		}

		// Coverage Region Management
		adminRegions := admin.Group("/coverage-regions")
		{
			adminRegions.POST("", h.CoverageHandler.CreateRegion)
			adminRegions.GET("", h.CoverageHandler.ListRegions)
			adminRegions.GET("/:id", h.CoverageHandler.GetRegion)
			adminRegions.PUT("/:id", h.CoverageHandler.UpdateRegion)
			adminRegions.DELETE("/:id", h.CoverageHandler.DeleteRegion)
		}

		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
