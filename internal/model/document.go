package model

import (
	"time"
)

// Document represents a vehicle document record (registration, insurance
// papers and so on). File storage lives elsewhere; only the metadata and a
// URL are kept here.
type Document struct {
	ID        int        `json:"id" gorm:"primaryKey"`
	VehicleID int        `json:"vehicle_id" gorm:"column:vehicle_id;not null;index"`
	Name      string     `json:"name" gorm:"size:100;not null"`
	DocType   string     `json:"doc_type" gorm:"column:doc_type;size:50"`
	URL       string     `json:"url" gorm:"size:500"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" gorm:"column:expires_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null;default:now()"`
}

func (Document) TableName() string {
	return "documents"
}
