package model

import (
	"time"
)

// Trip 行程记录
type Trip struct {
	ID        int        `json:"id" gorm:"primaryKey"`
	VehicleID int        `json:"vehicle_id" gorm:"column:vehicle_id;not null;index"`
	StartTime time.Time  `json:"start_time" gorm:"column:start_time;not null;index"`
	EndTime   *time.Time `json:"end_time,omitempty" gorm:"column:end_time"`
	Distance  float64    `json:"distance"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null;default:now()"`
}

func (Trip) TableName() string {
	return "trips"
}

// Stop 停车记录
type Stop struct {
	ID        int        `json:"id" gorm:"primaryKey"`
	VehicleID int        `json:"vehicle_id" gorm:"column:vehicle_id;not null;index"`
	StartTime time.Time  `json:"start_time" gorm:"column:start_time;not null;index"`
	EndTime   *time.Time `json:"end_time,omitempty" gorm:"column:end_time"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null;default:now()"`
}

func (Stop) TableName() string {
	return "stops"
}
