package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// VehicleHandler 车辆处理器
type VehicleHandler struct {
	db *gorm.DB
}

// NewVehicleHandler 创建车辆处理器
func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

// RegisterRoutes 注册路由
func (h *VehicleHandler) RegisterRoutes(r *gin.RouterGroup) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}
}

// ListVehicles 获取车辆列表
// @Summary List vehicles
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param registration_no query string false "Registration number filter"
// @Param imei query string false "IMEI filter"
// @Param make query string false "Make filter"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var query model.VehicleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.db.Model(&model.Vehicle{}).Preload("Owner")

	if query.RegistrationNo != "" {
		db = db.Where("registration_no LIKE ?", "%"+query.RegistrationNo+"%")
	}
	if query.IMEI != "" {
		db = db.Where("imei = ?", query.IMEI)
	}
	if query.Make != "" {
		db = db.Where("make = ?", query.Make)
	}

	var total int64
	db.Count(&total)

	var vehicles []model.Vehicle
	offset := (query.Page - 1) * query.PageSize
	db.Order("created_at DESC").Offset(offset).Limit(query.PageSize).Find(&vehicles)

	c.JSON(http.StatusOK, gin.H{
		"list":      vehicles,
		"total":     total,
		"page":      query.Page,
		"page_size": query.PageSize,
	})
}

// GetVehicle 获取车辆详情
// @Summary Get vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} model.Vehicle
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	var vehicle model.Vehicle
	if err := h.db.Preload("Owner").First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// CreateVehicle 创建车辆
// @Summary Create vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vehicle body model.CreateVehicleRequest true "Vehicle"
// @Success 201 {object} model.Vehicle
// @Failure 400 {object} map[string]string
// @Router /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req model.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 检查 IMEI 是否已存在
	var count int64
	h.db.Model(&model.Vehicle{}).Where("imei = ?", req.IMEI).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imei already exists"})
		return
	}

	vehicle := model.Vehicle{
		IMEI:           req.IMEI,
		RegistrationNo: req.RegistrationNo,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		FuelCapacity:   req.FuelCapacity,
		OwnerID:        req.OwnerID,
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// UpdateVehicle 更新车辆
// @Summary Update vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param vehicle body model.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} model.Vehicle
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	var req model.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.RegistrationNo != "" {
		updates["registration_no"] = req.RegistrationNo
	}
	if req.Make != "" {
		updates["make"] = req.Make
	}
	if req.Model != "" {
		updates["model"] = req.Model
	}
	if req.Year > 0 {
		updates["year"] = req.Year
	}
	if req.FuelCapacity > 0 {
		updates["fuel_capacity"] = req.FuelCapacity
	}
	if req.Odometer > 0 {
		updates["odometer"] = req.Odometer
	}

	result := h.db.Model(&model.Vehicle{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}

	var vehicle model.Vehicle
	h.db.First(&vehicle, id)
	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle 删除车辆
// @Summary Delete vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	result := h.db.Delete(&model.Vehicle{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
