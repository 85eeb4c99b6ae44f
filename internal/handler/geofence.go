package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// GeofenceHandler 围栏处理器
type GeofenceHandler struct {
	db *gorm.DB
}

// NewGeofenceHandler 创建围栏处理器
func NewGeofenceHandler(db *gorm.DB) *GeofenceHandler {
	return &GeofenceHandler{db: db}
}

// RegisterRoutes 注册路由
func (h *GeofenceHandler) RegisterRoutes(r *gin.RouterGroup) {
	geofences := r.Group("/geofences")
	{
		geofences.GET("", h.ListGeofences)
		geofences.GET("/:id", h.GetGeofence)
	}

	alerts := r.Group("/alerts")
	{
		alerts.GET("", h.ListAlerts)
		alerts.POST("/:id/resolve", h.ResolveAlert)
	}
}

// ListGeofences 获取围栏列表
// @Summary List geofences
// @Tags Geofences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /geofences [get]
func (h *GeofenceHandler) ListGeofences(c *gin.Context) {
	var geofences []model.Geofence
	if err := h.db.Order("name").Find(&geofences).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": geofences, "total": len(geofences)})
}

// GetGeofence 获取围栏详情
// @Summary Get geofence
// @Tags Geofences
// @Produce json
// @Security BearerAuth
// @Param id path int true "Geofence ID"
// @Success 200 {object} model.Geofence
// @Failure 404 {object} map[string]string
// @Router /geofences/{id} [get]
func (h *GeofenceHandler) GetGeofence(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid geofence id"})
		return
	}

	var geofence model.Geofence
	if err := h.db.First(&geofence, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "geofence not found"})
		return
	}

	c.JSON(http.StatusOK, geofence)
}

// ListAlerts 获取围栏报警列表
// @Summary List geofence alerts
// @Tags Geofences
// @Produce json
// @Security BearerAuth
// @Param resolved query bool false "Resolved filter"
// @Param vehicle_id query int false "Vehicle filter"
// @Success 200 {object} map[string]interface{}
// @Router /alerts [get]
func (h *GeofenceHandler) ListAlerts(c *gin.Context) {
	db := h.db.Model(&model.GeofenceAlert{}).Preload("Vehicle").Preload("Geofence")

	if v := c.Query("resolved"); v != "" {
		resolved, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resolved flag"})
			return
		}
		db = db.Where("resolved = ?", resolved)
	}
	if v := c.Query("vehicle_id"); v != "" {
		vehicleID, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
			return
		}
		db = db.Where("vehicle_id = ?", vehicleID)
	}

	var alerts []model.GeofenceAlert
	if err := db.Order("created_at DESC").Limit(200).Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": alerts, "total": len(alerts)})
}

// ResolveAlert 处理围栏报警
// @Summary Resolve geofence alert
// @Tags Geofences
// @Produce json
// @Security BearerAuth
// @Param id path int true "Alert ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /alerts/{id}/resolve [post]
func (h *GeofenceHandler) ResolveAlert(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}

	result := h.db.Model(&model.GeofenceAlert{}).Where("id = ?", id).Update("resolved", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "alert resolved"})
}
