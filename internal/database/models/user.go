package models

import (
	"time"
)

// Student lifecycle states
const (
	UserStatusEnrolled  = "ENROLLED"
	UserStatusWithdrawn = "WITHDRAWN"
	UserStatusCompleted = "COMPLETED"
)

// Role names seeded by migration
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// Role represents a user role reference
type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null;unique" json:"name"`
}

// TableName overrides the table name
func (Role) TableName() string {
	return "roles"
}

// User represents a student registered with the institute
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Phone     string    `gorm:"not null" json:"phone"`
	Email     string    `gorm:"not null" json:"email"`
	Status    string    `gorm:"not null;default:'ENROLLED'" json:"status"`
	RoleID    uint      `gorm:"not null" json:"role_id"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Role        Role         `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Enrollments []CourseUser `gorm:"foreignKey:UserID" json:"enrollments,omitempty"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ValidUserStatus reports whether s is a known student state.
func ValidUserStatus(s string) bool {
	switch s {
	case UserStatusEnrolled, UserStatusWithdrawn, UserStatusCompleted:
		return true
	}
	return false
}
