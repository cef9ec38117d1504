package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/soupclass/soup-backend/internal/response"
	"github.com/soupclass/soup-backend/internal/service"
)

const defaultTopCourses = 5

// DashboardHandler serves the admin overview.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboardData godoc
// GET /api/v1/admin/dashboard?top=
// Returns user, catalogue and invoice counters, total revenue and the best-selling courses.
// top=0 skips the ranking.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	top := defaultTopCourses
	if raw, ok := c.GetQuery("top"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > service.MaxTopCourses {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
				"top": "top must be a number between 0 and " + strconv.Itoa(service.MaxTopCourses),
			})
			return
		}
		top = n
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), top)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
