package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aryankr26/fleet-backend-1.0/internal/service"
)

// DashboardHandler serves the derived dashboard views. All derivation
// happens in the services; this layer only parses requests and maps engine
// errors to status codes.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	insightsService  *service.InsightsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, insightsService *service.InsightsService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		insightsService:  insightsService,
	}
}

// RegisterRoutes 注册路由
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/stats", h.GetStats)
		dashboard.GET("/vehicle/:id", h.GetVehicleDetail)
		dashboard.GET("/insights", h.GetInsights)
		dashboard.GET("/insights/export", h.ExportInsights)
	}
}

// GetStats returns the fleet snapshot
// @Summary Fleet snapshot
// @Description Fleet status counts, per-vehicle summaries, recent alerts, today's fuel summary and open complaints
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	snapshot, err := h.dashboardService.GetFleetSnapshot(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}

// GetVehicleDetail returns the detail view for one vehicle
// @Summary Vehicle detail
// @Description Recent history plus derived status and same-day rollups for one vehicle
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /dashboard/vehicle/{id} [get]
func (h *DashboardHandler) GetVehicleDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	detail, err := h.dashboardService.GetVehicleDetail(c.Request.Context(), id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

// GetInsights returns trend aggregations for a period
// @Summary Insights
// @Description Fuel, distance, driver score and complaint trends over a day/week/month window
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param period query string false "Period (day, week, month)" default(week)
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /dashboard/insights [get]
func (h *DashboardHandler) GetInsights(c *gin.Context) {
	period := service.NormalizePeriod(c.DefaultQuery("period", "week"))

	insights, err := h.insightsService.GetInsights(c.Request.Context(), period, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": insights})
}

// ExportInsights streams the insights as an XLSX workbook
// @Summary Export insights
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param period query string false "Period (day, week, month)" default(week)
// @Success 200 {file} file
// @Failure 503 {object} map[string]string
// @Router /dashboard/insights/export [get]
func (h *DashboardHandler) ExportInsights(c *gin.Context) {
	period := service.NormalizePeriod(c.DefaultQuery("period", "week"))

	insights, err := h.insightsService.GetInsights(c.Request.Context(), period, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	workbook, err := service.BuildInsightsWorkbook(insights)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer workbook.Close()

	filename := "insights_" + string(period) + "_" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
