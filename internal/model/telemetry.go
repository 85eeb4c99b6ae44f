package model

import (
	"time"
)

// Telemetry represents one timestamped vehicle state report. Records are
// append-only: they are never updated after creation.
type Telemetry struct {
	ID            int       `json:"id" gorm:"primaryKey"`
	VehicleID     int       `json:"vehicle_id" gorm:"column:vehicle_id;not null;index:idx_telemetry_vehicle_time,priority:1"`
	IMEI          string    `json:"imei,omitempty" gorm:"column:imei;type:varchar(20)"`
	Timestamp     time.Time `json:"timestamp" gorm:"not null;index:idx_telemetry_vehicle_time,priority:2,sort:desc"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Speed         float64   `json:"speed"`
	Ignition      bool      `json:"ignition"`
	Motion        bool      `json:"motion"`
	Power         float64   `json:"power"`
	TotalDistance float64   `json:"total_distance" gorm:"column:total_distance"`
	TodayDistance float64   `json:"today_distance" gorm:"column:today_distance"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null;default:now()"`
}

func (Telemetry) TableName() string {
	return "telemetries"
}

// IngestTelemetryRequest represents a telemetry report from a device
type IngestTelemetryRequest struct {
	VehicleID     int       `json:"vehicle_id" binding:"required"`
	Timestamp     time.Time `json:"timestamp" binding:"required"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Speed         float64   `json:"speed"`
	Ignition      bool      `json:"ignition"`
	Motion        bool      `json:"motion"`
	Power         float64   `json:"power"`
	TotalDistance float64   `json:"total_distance"`
	TodayDistance float64   `json:"today_distance"`
}

// VehicleShadow represents the live state of a vehicle (stored in Redis)
type VehicleShadow struct {
	VehicleID int     `json:"vehicle_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Speed     float64 `json:"speed"`
	Ignition  bool    `json:"ignition"`
	Timestamp int64   `json:"ts"`
}

// DistancePoint is a telemetry sample reduced to its cumulative distance
// reading, used by the insights distance trend.
type DistancePoint struct {
	VehicleID     int       `json:"vehicle_id" gorm:"column:vehicle_id"`
	TotalDistance float64   `json:"total_distance" gorm:"column:total_distance"`
	Timestamp     time.Time `json:"timestamp"`
}
