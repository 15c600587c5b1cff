package models

import "time"

// AdminRole enumerates administrator privilege levels.
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "superadmin"
)

// AdminModel represents one person permitted to manage content.
// Rows are created by the provisioning CLI, never by the running service,
// and the service never deletes them.
type AdminModel struct {
	Base
	Email        string     `json:"email"     gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-"         gorm:"not null"`
	Role         AdminRole  `json:"role"      gorm:"type:varchar(16);default:admin"`
	Active       bool       `json:"active"    gorm:"default:true"`
	LastLogin    *time.Time `json:"lastLogin"`
}

func (AdminModel) TableName() string { return "admins" }
