// internal/handlers/coverage/coverage_handler.go
package coverage

import (
	"net/http"

	"mealbox-service/internal/domain/geo"
	xerrors "mealbox-service/internal/pkg/errors"
	"mealbox-service/internal/pkg/response"
	service "mealbox-service/internal/service/geo"

	"github.com/gin-gonic/gin"
)

type CoverageHandler struct {
	coverageService *service.CoverageService
}

func NewCoverageHandler(coverageService *service.CoverageService) *CoverageHandler {
	return &CoverageHandler{
		coverageService: coverageService,
	}
}

// ========== Public ==========

// Check resolves the coverage verdict for a delivery coordinate. Every
// status, including outside and no-location, comes back as HTTP 200; the
// status field tells the client what to show.
func (h *CoverageHandler) Check(c *gin.Context) {
	var req geo.CheckCoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	verdict := h.coverageService.CheckCoverage(c.Request.Context(), &req)
	response.Success(c, http.StatusOK, "coverage checked", verdict)
}

// ========== Admin ==========

// CreateRegion creates a coverage region (admin only)
func (h *CoverageHandler) CreateRegion(c *gin.Context) {
	var req geo.CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.coverageService.CreateRegion(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to create coverage region", err)
		return
	}

	response.Success(c, http.StatusCreated, "coverage region created successfully", result)
}

// UpdateRegion updates a coverage region (admin only)
func (h *CoverageHandler) UpdateRegion(c *gin.Context) {
	id := c.Param("id")

	var req geo.UpdateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.coverageService.UpdateRegion(c.Request.Context(), id, &req)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "coverage region not found")
			return
		}
		response.Error(c, http.StatusBadRequest, "failed to update coverage region", err)
		return
	}

	response.Success(c, http.StatusOK, "coverage region updated successfully", result)
}

// DeleteRegion removes a coverage region (admin only)
func (h *CoverageHandler) DeleteRegion(c *gin.Context) {
	id := c.Param("id")

	if err := h.coverageService.DeleteRegion(c.Request.Context(), id); err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "coverage region not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete coverage region", err)
		return
	}

	response.Success(c, http.StatusOK, "coverage region deleted successfully", nil)
}

// GetRegion retrieves a coverage region (admin only)
func (h *CoverageHandler) GetRegion(c *gin.Context) {
	id := c.Param("id")

	result, err := h.coverageService.GetRegion(c.Request.Context(), id)
	if err != nil {
		if err == xerrors.ErrNotFound {
			response.NotFound(c, "coverage region not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get coverage region", err)
		return
	}

	response.Success(c, http.StatusOK, "coverage region retrieved", result)
}

// ListRegions lists all coverage regions (admin only)
func (h *CoverageHandler) ListRegions(c *gin.Context) {
	result, err := h.coverageService.ListRegions(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list coverage regions", err)
		return
	}

	response.Success(c, http.StatusOK, "coverage regions retrieved", result)
}
