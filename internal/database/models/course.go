package models

import (
	"time"
)

// Course progress states. A soft-deleted course is always forced to FINISHED.
const (
	CourseStatusPlanned  = "PLANNED"
	CourseStatusOngoing  = "ONGOING"
	CourseStatusFinished = "FINISHED"
)

// Course represents a training course open for registration
type Course struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Status    string    `gorm:"not null;default:'PLANNED'" json:"status"`
	StartDate time.Time `gorm:"not null" json:"start_date"` // registration window start
	EndDate   time.Time `gorm:"not null" json:"end_date"`   // registration window end
	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Enrollments []CourseUser `gorm:"foreignKey:CourseID" json:"enrollments,omitempty"`
}

// TableName overrides the table name
func (Course) TableName() string {
	return "courses"
}

// ValidCourseStatus reports whether s is a known course progress state.
func ValidCourseStatus(s string) bool {
	switch s {
	case CourseStatusPlanned, CourseStatusOngoing, CourseStatusFinished:
		return true
	}
	return false
}
