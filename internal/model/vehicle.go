// 车辆信息模型

package model

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle 车辆信息
type Vehicle struct {
	ID             int        `json:"id" gorm:"primaryKey"`
	IMEI           string     `json:"imei" gorm:"column:imei;type:varchar(20);not null;uniqueIndex"`
	RegistrationNo string     `json:"registration_no,omitempty" gorm:"column:registration_no;type:varchar(20)"`
	Make           string     `json:"make,omitempty" gorm:"type:varchar(50)"`
	Model          string     `json:"model,omitempty" gorm:"type:varchar(50)"`
	Year           int        `json:"year,omitempty"`
	FuelCapacity   float64    `json:"fuel_capacity,omitempty" gorm:"column:fuel_capacity"`
	OwnerID        *int       `json:"owner_id,omitempty" gorm:"column:owner_id"`
	Odometer       float64    `json:"odometer" gorm:"default:0"`

	// 最近上报位置缓存（有遥测数据后不再是权威来源）
	LastLat  *float64   `json:"last_lat,omitempty" gorm:"column:last_lat"`
	LastLng  *float64   `json:"last_lng,omitempty" gorm:"column:last_lng"`
	LastSeen *time.Time `json:"last_seen,omitempty" gorm:"column:last_seen"`

	CreatedAt time.Time      `json:"created_at" gorm:"not null;default:now()"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// 关联
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// CreateVehicleRequest 创建车辆请求
type CreateVehicleRequest struct {
	IMEI           string  `json:"imei" binding:"required"`
	RegistrationNo string  `json:"registration_no"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	FuelCapacity   float64 `json:"fuel_capacity"`
	OwnerID        *int    `json:"owner_id"`
}

// UpdateVehicleRequest 更新车辆请求
type UpdateVehicleRequest struct {
	RegistrationNo string  `json:"registration_no"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	FuelCapacity   float64 `json:"fuel_capacity"`
	Odometer       float64 `json:"odometer"`
}

// VehicleListQuery 车辆列表查询
type VehicleListQuery struct {
	RegistrationNo string `form:"registration_no"`
	IMEI           string `form:"imei"`
	Make           string `form:"make"`
	Page           int    `form:"page,default=1"`
	PageSize       int    `form:"page_size,default=20"`
}
