package model

import (
	"time"
)

// DriverScore represents a driver's score for a scoring period
type DriverScore struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	UserID      int       `json:"user_id" gorm:"column:user_id;not null"`
	VehicleID   int       `json:"vehicle_id" gorm:"column:vehicle_id;not null"`
	PeriodStart time.Time `json:"period_start" gorm:"column:period_start;not null;index"`
	PeriodEnd   time.Time `json:"period_end" gorm:"column:period_end;not null"`
	Score       float64   `json:"score" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:now()"`

	// 关联
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

func (DriverScore) TableName() string {
	return "driver_scores"
}
