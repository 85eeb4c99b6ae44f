// 油量记录模型

package model

import (
	"time"
)

// Suspicion labels assigned by the external fuel anomaly detector.
// This service only stores and aggregates them.
const (
	SuspicionNone   = "none"
	SuspicionYellow = "yellow"
	SuspicionRed    = "red"
)

// FuelLog 油量记录
type FuelLog struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	VehicleID  int       `json:"vehicle_id" gorm:"column:vehicle_id;not null;index"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null;index"`
	Volume     float64   `json:"volume"`
	LevelDelta float64   `json:"level_delta" gorm:"column:level_delta"`
	Suspicion  string    `json:"suspicion" gorm:"type:varchar(10);default:'none'"` // none, yellow, red
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:now()"`

	// 关联
	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

func (FuelLog) TableName() string {
	return "fuel_logs"
}

// CreateFuelLogRequest 创建油量记录请求
type CreateFuelLogRequest struct {
	VehicleID  int       `json:"vehicle_id" binding:"required"`
	Timestamp  time.Time `json:"timestamp" binding:"required"`
	Volume     float64   `json:"volume"`
	LevelDelta float64   `json:"level_delta"`
	Suspicion  string    `json:"suspicion"`
}
