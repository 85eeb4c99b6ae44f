package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
	"github.com/Aryankr26/fleet-backend-1.0/internal/service"
)

// TelemetryHandler 遥测处理器
type TelemetryHandler struct {
	telemetryService *service.TelemetryService
}

// NewTelemetryHandler 创建遥测处理器
func NewTelemetryHandler(telemetryService *service.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetryService: telemetryService}
}

// RegisterRoutes 注册路由
func (h *TelemetryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/telemetry", h.Ingest)
	r.GET("/vehicles/:id/telemetry", h.GetHistory)
	r.GET("/vehicles/:id/live", h.GetLive)
}

// Ingest 接收遥测报文
// @Summary Ingest telemetry
// @Tags Telemetry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param telemetry body model.IngestTelemetryRequest true "Telemetry report"
// @Success 201 {object} model.Telemetry
// @Failure 404 {object} map[string]string
// @Router /telemetry [post]
func (h *TelemetryHandler) Ingest(c *gin.Context) {
	var req model.IngestTelemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.telemetryService.Ingest(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// GetHistory 查询遥测历史
// @Summary Telemetry history
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param from query string false "Start time (RFC3339)"
// @Param to query string false "End time (RFC3339)"
// @Param limit query int false "Max samples" default(100)
// @Success 200 {object} map[string]interface{}
// @Router /vehicles/{id}/telemetry [get]
func (h *TelemetryHandler) GetHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		from, err = time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from time"})
			return
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to time"})
			return
		}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	samples, err := h.telemetryService.History(c.Request.Context(), id, from, to, limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": samples, "total": len(samples)})
}

// GetLive 查询实时状态
// @Summary Live vehicle state
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} model.VehicleShadow
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id}/live [get]
func (h *TelemetryHandler) GetLive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	shadow, err := h.telemetryService.Live(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if shadow == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no live state for vehicle"})
		return
	}

	c.JSON(http.StatusOK, shadow)
}
