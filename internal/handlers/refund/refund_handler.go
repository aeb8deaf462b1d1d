// internal/handlers/refund/refund_handler.go
package refund

import (
	"errors"
	"net/http"

	"mealbox-service/internal/domain/refund"
	xerrors "mealbox-service/internal/pkg/errors"
	"mealbox-service/internal/pkg/response"
	service "mealbox-service/internal/service/refund"

	"github.com/gin-gonic/gin"
)

type RefundHandler struct {
	refundService *service.RefundService
}

func NewRefundHandler(refundService *service.RefundService) *RefundHandler {
	return &RefundHandler{
		refundService: refundService,
	}
}

type policyWithWarnings struct {
	Policy   *refund.RefundPolicy `json:"policy"`
	Warnings []string             `json:"warnings,omitempty"`
}

// CreatePolicy saves a refund policy (admin only). An invalid tier schedule
// blocks the write and returns every violation found.
func (h *RefundHandler) CreatePolicy(c *gin.Context) {
	var req refund.CreateRefundPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	policy, warnings, err := h.refundService.CreatePolicy(c.Request.Context(), &req)
	if err != nil {
		var invalid *service.ScheduleInvalidError
		if errors.As(err, &invalid) {
			response.Error(c, http.StatusUnprocessableEntity, "tier schedule invalid", err,
				map[string]interface{}{"violations": invalid.Violations})
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create refund policy", err)
		return
	}

	response.Success(c, http.StatusCreated, "refund policy created successfully",
		policyWithWarnings{Policy: policy, Warnings: warnings})
}

// UpdatePolicy replaces a refund policy's schedule (admin only)
func (h *RefundHandler) UpdatePolicy(c *gin.Context) {
	id := c.Param("id")

	var req refund.UpdateRefundPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	policy, warnings, err := h.refundService.UpdatePolicy(c.Request.Context(), id, &req)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "refund policy not found")
			return
		}
		var invalid *service.ScheduleInvalidError
		if errors.As(err, &invalid) {
			response.Error(c, http.StatusUnprocessableEntity, "tier schedule invalid", err,
				map[string]interface{}{"violations": invalid.Violations})
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update refund policy", err)
		return
	}

	response.Success(c, http.StatusOK, "refund policy updated successfully",
		policyWithWarnings{Policy: policy, Warnings: warnings})
}

// DeletePolicy removes a refund policy (admin only)
func (h *RefundHandler) DeletePolicy(c *gin.Context) {
	id := c.Param("id")

	if err := h.refundService.DeletePolicy(c.Request.Context(), id); err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "refund policy not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete refund policy", err)
		return
	}

	response.Success(c, http.StatusOK, "refund policy deleted successfully", nil)
}

// GetPolicy retrieves a refund policy (admin only)
func (h *RefundHandler) GetPolicy(c *gin.Context) {
	id := c.Param("id")

	result, err := h.refundService.GetPolicy(c.Request.Context(), id)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "refund policy not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get refund policy", err)
		return
	}

	response.Success(c, http.StatusOK, "refund policy retrieved", result)
}

// ListPolicies lists all refund policies (admin only)
func (h *RefundHandler) ListPolicies(c *gin.Context) {
	result, err := h.refundService.ListPolicies(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list refund policies", err)
		return
	}

	response.Success(c, http.StatusOK, "refund policies retrieved", result)
}

// ResolveRefund resolves the refund owed for an elapsed-day offset (admin
// only). A schedule gap is reported as a data-integrity problem, not a 0%
// refund.
func (h *RefundHandler) ResolveRefund(c *gin.Context) {
	id := c.Param("id")

	var req refund.ResolveRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.refundService.ResolveRefund(c.Request.Context(), id, &req)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "refund policy not found")
			return
		}
		if errors.Is(err, service.ErrNoApplicableTier) {
			response.Error(c, http.StatusUnprocessableEntity,
				"refund schedule has a gap at the requested day", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to resolve refund", err)
		return
	}

	response.Success(c, http.StatusOK, "refund resolved", result)
}
