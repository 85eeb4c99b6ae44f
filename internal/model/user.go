package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleOwner      = "owner"
	RoleSupervisor = "supervisor"
	RoleDriver     = "driver"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleSupervisor, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// User represents a system user
type User struct {
	ID        int            `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password  string         `json:"-" gorm:"size:255"` // hashed password
	Name      string         `json:"name" gorm:"size:100"`
	Role      string         `json:"role" gorm:"size:20;default:'owner'"` // owner, supervisor, driver, admin
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// SignupRequest represents signup credentials
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginResponse represents login response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
