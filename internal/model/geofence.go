package model

import (
	"time"

	"gorm.io/gorm"
)

// Geofence represents a geographic fence. Containment testing and alert
// generation happen upstream; this service only serves the records.
type Geofence struct {
	ID        int            `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Type      string         `json:"type" gorm:"size:20;default:'circle'"` // circle, polygon
	CenterLat float64        `json:"center_lat" gorm:"column:center_lat"`
	CenterLng float64        `json:"center_lng" gorm:"column:center_lng"`
	Radius    float64        `json:"radius"` // meters
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Geofence) TableName() string {
	return "geofences"
}

// GeofenceAlert represents an alert raised when a vehicle crossed a fence
type GeofenceAlert struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	VehicleID  int       `json:"vehicle_id" gorm:"column:vehicle_id;not null;index"`
	GeofenceID int       `json:"geofence_id" gorm:"column:geofence_id;not null"`
	AlertType  string    `json:"alert_type" gorm:"size:20"` // enter, exit
	Resolved   bool      `json:"resolved" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:now()"`

	// 关联
	Vehicle  *Vehicle  `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Geofence *Geofence `json:"geofence,omitempty" gorm:"foreignKey:GeofenceID"`
}

func (GeofenceAlert) TableName() string {
	return "geofence_alerts"
}
