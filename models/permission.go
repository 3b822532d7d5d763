package models

import "time"

// RolePermission is one row of the role -> resource -> verb matrix.
type RolePermission struct {
	PermissionID int        `gorm:"primaryKey;column:permission_id" json:"permission_id"`
	RoleID       int        `gorm:"column:role_id" json:"role_id"`
	Resource     string     `gorm:"column:resource" json:"resource"`
	CanCreate    bool       `gorm:"column:can_create" json:"can_create"`
	CanRead      bool       `gorm:"column:can_read" json:"can_read"`
	CanUpdate    bool       `gorm:"column:can_update" json:"can_update"`
	CanDelete    bool       `gorm:"column:can_delete" json:"can_delete"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
