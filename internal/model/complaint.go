// 投诉工单模型

package model

import (
	"time"
)

// Complaint statuses
const (
	ComplaintOpen       = "open"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
	ComplaintClosed     = "closed"
)

// Complaint 投诉工单
type Complaint struct {
	ID          int        `json:"id" gorm:"primaryKey"`
	VehicleID   *int       `json:"vehicle_id,omitempty" gorm:"column:vehicle_id"`
	UserID      int        `json:"user_id" gorm:"column:user_id;not null"`
	Type        string     `json:"type" gorm:"size:50;not null;index"`
	Priority    string     `json:"priority" gorm:"size:20;default:'medium'"` // low, medium, high
	Subject     string     `json:"subject" gorm:"size:200;not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Status      string     `json:"status" gorm:"size:20;default:'open';index"` // open, in_progress, resolved, closed
	Response    string     `json:"response,omitempty" gorm:"type:text"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" gorm:"column:resolved_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null;default:now()"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"not null;default:now()"`

	// 关联
	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintTypeCount 按类型统计的投诉数
type ComplaintTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// CreateComplaintRequest 创建投诉请求
type CreateComplaintRequest struct {
	VehicleID   *int   `json:"vehicle_id"`
	Type        string `json:"type" binding:"required"`
	Priority    string `json:"priority"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
}

// UpdateComplaintRequest 更新投诉请求
type UpdateComplaintRequest struct {
	Status      string  `json:"status"`
	Response    *string `json:"response"`
	Priority    string  `json:"priority"`
	Description *string `json:"description"`
}

// ComplaintListQuery 投诉列表查询
type ComplaintListQuery struct {
	Status    string `form:"status"`
	Type      string `form:"type"`
	VehicleID int    `form:"vehicle_id"`
	UserID    int    `form:"user_id"`
}
