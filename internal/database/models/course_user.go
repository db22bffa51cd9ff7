package models

import (
	"time"
)

// CourseUser represents the enrollment of one user into one course.
// The composite primary key guarantees at most one row per (course, user)
// pair for all time; removing an enrollment flips the deleted flag and a
// later re-assignment reactivates the same row.
type CourseUser struct {
	CourseID       uint      `gorm:"primaryKey;not null" json:"course_id"`
	UserID         uint      `gorm:"primaryKey;not null" json:"user_id"`
	Status         string    `gorm:"not null;default:'ENROLLED'" json:"status"`
	Reference      string    `gorm:"size:100" json:"reference"`
	PriceReduction float64   `gorm:"not null;default:0" json:"price_reduction"`
	PricePaid      float64   `gorm:"not null;default:0" json:"price_paid"`
	Comment        string    `gorm:"size:500" json:"comment"`
	Deleted        bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides the table name
func (CourseUser) TableName() string {
	return "course_users"
}
