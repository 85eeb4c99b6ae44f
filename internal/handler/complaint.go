package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// ComplaintHandler 投诉工单处理器
type ComplaintHandler struct {
	db *gorm.DB
}

// NewComplaintHandler 创建投诉处理器
func NewComplaintHandler(db *gorm.DB) *ComplaintHandler {
	return &ComplaintHandler{db: db}
}

// RegisterRoutes 注册路由
func (h *ComplaintHandler) RegisterRoutes(r *gin.RouterGroup) {
	complaints := r.Group("/complaints")
	{
		complaints.GET("", h.ListComplaints)
		complaints.POST("", h.CreateComplaint)
		complaints.GET("/:id", h.GetComplaint)
		complaints.PUT("/:id", h.UpdateComplaint)
		complaints.DELETE("/:id", h.DeleteComplaint)
	}
}

// ListComplaints 获取投诉列表
// @Summary List complaints
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param type query string false "Type filter"
// @Param vehicle_id query int false "Vehicle filter"
// @Success 200 {object} map[string]interface{}
// @Router /complaints [get]
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	var query model.ComplaintListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.db.Model(&model.Complaint{}).Preload("Vehicle").Preload("User")

	// 司机只能看到自己提交的工单
	if getUserRoleFromContext(c) == model.RoleDriver {
		db = db.Where("user_id = ?", getUserIDFromContext(c))
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Type != "" {
		db = db.Where("type = ?", query.Type)
	}
	if query.VehicleID > 0 {
		db = db.Where("vehicle_id = ?", query.VehicleID)
	}
	if query.UserID > 0 {
		db = db.Where("user_id = ?", query.UserID)
	}

	var complaints []model.Complaint
	if err := db.Order("created_at DESC").Find(&complaints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": complaints, "total": len(complaints)})
}

// GetComplaint 获取投诉详情
// @Summary Get complaint
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} model.Complaint
// @Failure 404 {object} map[string]string
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var complaint model.Complaint
	if err := h.db.Preload("Vehicle").Preload("User").First(&complaint, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	if getUserRoleFromContext(c) == model.RoleDriver && complaint.UserID != getUserIDFromContext(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// CreateComplaint 创建投诉
// @Summary Create complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param complaint body model.CreateComplaintRequest true "Complaint"
// @Success 201 {object} model.Complaint
// @Router /complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req model.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	complaint := model.Complaint{
		VehicleID:   req.VehicleID,
		UserID:      getUserIDFromContext(c),
		Type:        req.Type,
		Priority:    priority,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      model.ComplaintOpen,
	}

	if err := h.db.Create(&complaint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

// UpdateComplaint 更新投诉
// @Summary Update complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param complaint body model.UpdateComplaintRequest true "Fields to update"
// @Success 200 {object} model.Complaint
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /complaints/{id} [put]
func (h *ComplaintHandler) UpdateComplaint(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req model.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var complaint model.Complaint
	if err := h.db.First(&complaint, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	role := getUserRoleFromContext(c)

	// 状态流转和回复只允许管理侧操作
	if (req.Status != "" || req.Response != nil) && role != model.RoleAdmin && role != model.RoleSupervisor {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	// 提交人只能补充描述
	if role == model.RoleDriver && complaint.UserID != getUserIDFromContext(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.Status != "" {
		switch req.Status {
		case model.ComplaintOpen, model.ComplaintInProgress, model.ComplaintResolved, model.ComplaintClosed:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		updates["status"] = req.Status
		if req.Status == model.ComplaintResolved || req.Status == model.ComplaintClosed {
			updates["resolved_at"] = time.Now()
		}
	}
	if req.Response != nil {
		updates["response"] = *req.Response
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if err := h.db.Model(&complaint).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.db.Preload("Vehicle").Preload("User").First(&complaint, id)
	c.JSON(http.StatusOK, complaint)
}

// DeleteComplaint 删除投诉
// @Summary Delete complaint
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) DeleteComplaint(c *gin.Context) {
	if getUserRoleFromContext(c) != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	result := h.db.Delete(&model.Complaint{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "complaint deleted"})
}
