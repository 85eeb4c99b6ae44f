package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// FuelHandler 油量记录处理器
type FuelHandler struct {
	db *gorm.DB
}

// NewFuelHandler 创建油量处理器
func NewFuelHandler(db *gorm.DB) *FuelHandler {
	return &FuelHandler{db: db}
}

// RegisterRoutes 注册路由
func (h *FuelHandler) RegisterRoutes(r *gin.RouterGroup) {
	fuel := r.Group("/fuel-logs")
	{
		fuel.GET("", h.ListFuelLogs)
		fuel.POST("", h.CreateFuelLog)
	}
}

// ListFuelLogs 获取油量记录列表
// @Summary List fuel logs
// @Tags Fuel
// @Produce json
// @Security BearerAuth
// @Param vehicle_id query int false "Vehicle filter"
// @Param suspicion query string false "Suspicion filter (none, yellow, red)"
// @Param since query string false "Start time (RFC3339)"
// @Success 200 {object} map[string]interface{}
// @Router /fuel-logs [get]
func (h *FuelHandler) ListFuelLogs(c *gin.Context) {
	db := h.db.Model(&model.FuelLog{}).Preload("Vehicle")

	if v := c.Query("vehicle_id"); v != "" {
		vehicleID, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
			return
		}
		db = db.Where("vehicle_id = ?", vehicleID)
	}
	if v := c.Query("suspicion"); v != "" {
		db = db.Where("suspicion = ?", v)
	}
	if v := c.Query("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since time"})
			return
		}
		db = db.Where("timestamp >= ?", since)
	}

	var logs []model.FuelLog
	if err := db.Order("timestamp DESC").Limit(500).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": logs, "total": len(logs)})
}

// CreateFuelLog 创建油量记录
// @Summary Create fuel log
// @Tags Fuel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param log body model.CreateFuelLogRequest true "Fuel log"
// @Success 201 {object} model.FuelLog
// @Failure 404 {object} map[string]string
// @Router /fuel-logs [post]
func (h *FuelHandler) CreateFuelLog(c *gin.Context) {
	var req model.CreateFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suspicion := req.Suspicion
	switch suspicion {
	case "":
		suspicion = model.SuspicionNone
	case model.SuspicionNone, model.SuspicionYellow, model.SuspicionRed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suspicion"})
		return
	}

	var count int64
	h.db.Model(&model.Vehicle{}).Where("id = ?", req.VehicleID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}

	fuelLog := model.FuelLog{
		VehicleID:  req.VehicleID,
		Timestamp:  req.Timestamp,
		Volume:     req.Volume,
		LevelDelta: req.LevelDelta,
		Suspicion:  suspicion,
	}

	if err := h.db.Create(&fuelLog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, fuelLog)
}
