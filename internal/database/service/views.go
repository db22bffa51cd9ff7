package service

import (
	"time"

	"github.com/ikubinfo/enrollment-engine/internal/database/models"
)

// CourseView is the transfer shape handed to the presentation layer
// and to the report projector.
type CourseView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

func newCourseView(course *models.Course) CourseView {
	return CourseView{
		ID:        course.ID,
		Name:      course.Name,
		Price:     course.Price,
		Status:    course.Status,
		StartDate: course.StartDate,
		EndDate:   course.EndDate,
		CreatedAt: course.CreatedAt,
	}
}

// UserView is the transfer shape for a student.
type UserView struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(user *models.User) UserView {
	return UserView{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Email:     user.Email,
		Status:    user.Status,
		Role:      user.Role.Name,
		CreatedAt: user.CreatedAt,
	}
}

// EnrollmentView is the full transfer shape for one enrollment.
type EnrollmentView struct {
	CourseID       uint      `json:"course_id"`
	UserID         uint      `json:"user_id"`
	Status         string    `json:"status"`
	Reference      string    `json:"reference"`
	PriceReduction float64   `json:"price_reduction"`
	PricePaid      float64   `json:"price_paid"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newEnrollmentView(enrollment *models.CourseUser) EnrollmentView {
	return EnrollmentView{
		CourseID:       enrollment.CourseID,
		UserID:         enrollment.UserID,
		Status:         enrollment.Status,
		Reference:      enrollment.Reference,
		PriceReduction: enrollment.PriceReduction,
		PricePaid:      enrollment.PricePaid,
		Comment:        enrollment.Comment,
		CreatedAt:      enrollment.CreatedAt,
		UpdatedAt:      enrollment.UpdatedAt,
	}
}

// SimplifiedEnrollmentView is the flat projection used by the course
// detail listing: ids and display fields only, no nested graphs.
type SimplifiedEnrollmentView struct {
	CourseID    uint    `json:"course_id"`
	UserID      uint    `json:"user_id"`
	StudentName string  `json:"student_name"`
	Email       string  `json:"email"`
	Status      string  `json:"status"`
	Reference   string  `json:"reference"`
	PricePaid   float64 `json:"price_paid"`
}

// EnrollmentListView is one row of the filtered enrollment listing.
type EnrollmentListView struct {
	CourseID       uint      `json:"course_id"`
	UserID         uint      `json:"user_id"`
	CourseName     string    `json:"course_name"`
	StudentName    string    `json:"student_name"`
	Status         string    `json:"status"`
	Reference      string    `json:"reference"`
	PriceReduction float64   `json:"price_reduction"`
	PricePaid      float64   `json:"price_paid"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}
