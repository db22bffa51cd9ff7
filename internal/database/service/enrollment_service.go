package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ikubinfo/enrollment-engine/internal/config"
	"github.com/ikubinfo/enrollment-engine/internal/database/models"
	"github.com/ikubinfo/enrollment-engine/internal/database/repository"
)

// AssignInput carries the optional enrollment fields supplied on
// assignment. Zero values leave the stored (or default) value in place.
type AssignInput struct {
	CourseID       uint    `json:"course_id" validate:"required"`
	UserID         uint    `json:"user_id" validate:"required"`
	Status         string  `json:"status" validate:"omitempty,oneof=ENROLLED WITHDRAWN COMPLETED"`
	Reference      string  `json:"reference" validate:"max=100"`
	PriceReduction float64 `json:"price_reduction" validate:"gte=0"`
	PricePaid      float64 `json:"price_paid" validate:"gte=0"`
	Comment        string  `json:"comment" validate:"max=500"`
}

// EditInput replaces every mutable enrollment field.
type EditInput struct {
	CourseID       uint    `json:"course_id" validate:"required"`
	UserID         uint    `json:"user_id" validate:"required"`
	Status         string  `json:"status" validate:"required,oneof=ENROLLED WITHDRAWN COMPLETED"`
	Reference      string  `json:"reference" validate:"max=100"`
	PriceReduction float64 `json:"price_reduction" validate:"gte=0"`
	PricePaid      float64 `json:"price_paid" validate:"gte=0"`
	Comment        string  `json:"comment" validate:"max=500"`
}

// EnrollmentService owns the course-user lifecycle. The composite key
// guarantees exactly one enrollment row per (course, user) pair across
// all time: assignment reactivates a removed row instead of inserting.
type EnrollmentService interface {
	Assign(input AssignInput) (*EnrollmentView, error)
	Remove(courseID, userID uint) error
	Edit(input EditInput) (*EnrollmentView, error)
	ListActiveByCourse(courseID uint) ([]SimplifiedEnrollmentView, error)
	Filter(criteria repository.EnrollmentCriteria) (repository.Page[EnrollmentListView], error)
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	userRepo       repository.UserRepository
	cfg            *config.Config
	logger         *slog.Logger
	validate       *validator.Validate
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	cfg *config.Config,
	logger *slog.Logger,
) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		userRepo:       userRepo,
		cfg:            cfg,
		logger:         logger,
		validate:       newValidator(),
	}
}

func (s *enrollmentService) Assign(input AssignInput) (*EnrollmentView, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	existing, err := s.enrollmentRepo.FindByKey(input.CourseID, input.UserID)
	if err == nil {
		// The pair already holds a row: reactivate or no-op update.
		// Creation date and unsupplied fields stay as they were.
		existing.Deleted = false
		applyAssignFields(existing, input)
		if err := s.enrollmentRepo.Save(existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate enrollment: %w", err)
		}

		s.logger.Info("✅ [Enrollment] Enrollment reactivated",
			"course_id", input.CourseID,
			"user_id", input.UserID,
		)
		view := newEnrollmentView(existing)
		return &view, nil
	}
	if !errors.Is(err, repository.ErrEnrollmentNotFound) {
		return nil, fmt.Errorf("failed to look up enrollment: %w", err)
	}

	// Fresh assignment: both sides must exist and be active.
	if _, err := s.courseRepo.FindByID(input.CourseID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		return nil, err
	}

	enrollment := &models.CourseUser{
		CourseID:       input.CourseID,
		UserID:         input.UserID,
		Status:         input.Status,
		Reference:      input.Reference,
		PriceReduction: input.PriceReduction,
		PricePaid:      input.PricePaid,
		Comment:        input.Comment,
	}
	if enrollment.Status == "" {
		enrollment.Status = models.UserStatusEnrolled
	}
	if enrollment.Reference == "" {
		enrollment.Reference = "ENR-" + uuid.NewString()
	}

	if err := s.enrollmentRepo.Create(enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("✅ [Enrollment] User assigned to course",
		"course_id", input.CourseID,
		"user_id", input.UserID,
		"reference", enrollment.Reference,
	)
	view := newEnrollmentView(enrollment)
	return &view, nil
}

// Remove soft-deletes the enrollment. Removing an already-removed pair is
// a no-op success; removing a pair that was never assigned is NotFound.
func (s *enrollmentService) Remove(courseID, userID uint) error {
	enrollment, err := s.enrollmentRepo.FindByKey(courseID, userID)
	if err != nil {
		return err
	}
	if enrollment.Deleted {
		return nil
	}

	enrollment.Deleted = true
	if err := s.enrollmentRepo.Save(enrollment); err != nil {
		return fmt.Errorf("failed to remove enrollment: %w", err)
	}

	s.logger.Info("🗑️ [Enrollment] User removed from course",
		"course_id", courseID,
		"user_id", userID,
	)
	return nil
}

func (s *enrollmentService) Edit(input EditInput) (*EnrollmentView, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.FindByKey(input.CourseID, input.UserID)
	if err != nil {
		return nil, err
	}
	if enrollment.Deleted {
		return nil, repository.ErrEnrollmentNotFound
	}

	// Full replacement of the mutable fields; key and creation date stay.
	enrollment.Status = input.Status
	enrollment.Reference = input.Reference
	enrollment.PriceReduction = input.PriceReduction
	enrollment.PricePaid = input.PricePaid
	enrollment.Comment = input.Comment

	if err := s.enrollmentRepo.Save(enrollment); err != nil {
		return nil, fmt.Errorf("failed to update enrollment: %w", err)
	}

	s.logger.Info("✅ [Enrollment] Enrollment updated",
		"course_id", input.CourseID,
		"user_id", input.UserID,
	)
	view := newEnrollmentView(enrollment)
	return &view, nil
}

func (s *enrollmentService) ListActiveByCourse(courseID uint) ([]SimplifiedEnrollmentView, error) {
	enrollments, err := s.enrollmentRepo.ListActiveByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	views := make([]SimplifiedEnrollmentView, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		views = append(views, SimplifiedEnrollmentView{
			CourseID:    e.CourseID,
			UserID:      e.UserID,
			StudentName: e.User.FullName(),
			Email:       e.User.Email,
			Status:      e.Status,
			Reference:   e.Reference,
			PricePaid:   e.PricePaid,
		})
	}
	return views, nil
}

func (s *enrollmentService) Filter(criteria repository.EnrollmentCriteria) (repository.Page[EnrollmentListView], error) {
	if err := checkCriteria(criteria, criteria.Size, s.cfg); err != nil {
		return repository.Page[EnrollmentListView]{}, err
	}

	enrollments, total, err := s.enrollmentRepo.Filter(criteria)
	if err != nil {
		return repository.Page[EnrollmentListView]{}, fmt.Errorf("failed to filter enrollments: %w", err)
	}

	views := make([]EnrollmentListView, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		views = append(views, EnrollmentListView{
			CourseID:       e.CourseID,
			UserID:         e.UserID,
			CourseName:     e.Course.Name,
			StudentName:    e.User.FullName(),
			Status:         e.Status,
			Reference:      e.Reference,
			PriceReduction: e.PriceReduction,
			PricePaid:      e.PricePaid,
			Comment:        e.Comment,
			CreatedAt:      e.CreatedAt,
		})
	}
	return repository.NewPage(views, total, criteria.Page, criteria.Size), nil
}

// applyAssignFields copies only the supplied fields onto an existing row.
func applyAssignFields(enrollment *models.CourseUser, input AssignInput) {
	if input.Status != "" {
		enrollment.Status = input.Status
	}
	if input.Reference != "" {
		enrollment.Reference = input.Reference
	}
	if input.PriceReduction != 0 {
		enrollment.PriceReduction = input.PriceReduction
	}
	if input.PricePaid != 0 {
		enrollment.PricePaid = input.PricePaid
	}
	if input.Comment != "" {
		enrollment.Comment = input.Comment
	}
}
