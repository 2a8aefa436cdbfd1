// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the single source of authority for a user. The admin and
// super_admin roles are "staff" for authorization purposes.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsStaff reports whether the role carries administrative privileges.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperuser reports whether the role carries unrestricted privileges.
func (r Role) IsSuperuser() bool {
	return r == RoleSuperAdmin
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

// User represents a registered account. The UUID is the public-facing
// identifier; the numeric ID stays internal to the API and database.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	FirstName string    `gorm:"size:50" json:"first_name"`
	LastName  string    `gorm:"size:50" json:"last_name"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"size:20;not null;default:user" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Reviews   []Review  `gorm:"foreignKey:UserID" json:"-"`
}
