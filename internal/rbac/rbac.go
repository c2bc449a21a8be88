// Package rbac holds the authorization graph: permissions, roles, the
// role to permission grants and the user to role assignments. A user's
// effective permission set is the deduplicated union over every role
// assigned to them.
package rbac

import "time"

// Built-in permission names consumed by the route guards. The table is
// open ended, these are only the names seeded and checked by default.
const (
	PermAdmin           = "ADMIN"
	PermCreateBooking   = "CREATE_BOOKING"
	PermUpdateBooking   = "UPDATE_BOOKING"
	PermCancelBooking   = "CANCEL_BOOKING"
	PermDeleteBooking   = "DELETE_BOOKING"
	PermManageRooms     = "MANAGE_ROOMS"
	PermManageTimeslots = "MANAGE_TIMESLOTS"
	PermManageUsers     = "MANAGE_USERS"
	PermManageRoles     = "MANAGE_ROLES"
)

type Permission struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Permission) TableName() string { return "permissions" }

type Role struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Role) TableName() string { return "roles" }

// RolePermission grants one permission to one role. The join carries no
// uniqueness constraint, so the same grant may exist several times; readers
// deduplicate.
type RolePermission struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	RoleID       int64     `json:"role_id" gorm:"not null"`
	PermissionID int64     `json:"permission_id" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (RolePermission) TableName() string { return "role_permissions" }

// UserRole assigns one role to one user. Duplicate assignments are
// possible, same as the grants.
type UserRole struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null"`
	RoleID    int64     `json:"role_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserRole) TableName() string { return "user_roles" }
