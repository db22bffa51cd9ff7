package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ikubinfo/enrollment-engine/internal/config"
	"github.com/ikubinfo/enrollment-engine/internal/database/models"
	"github.com/ikubinfo/enrollment-engine/internal/database/repository"
)

// CourseInput carries the validated fields for creating or updating a course.
type CourseInput struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name" validate:"required,max=255"`
	Price     float64   `json:"price" validate:"gte=0"`
	Status    string    `json:"status" validate:"required,oneof=PLANNED ONGOING FINISHED"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// CourseService defines the interface for course business logic
type CourseService interface {
	Filter(criteria repository.CourseCriteria) (repository.Page[CourseView], error)
	Get(id uint) (*CourseView, error)
	ListUnfiltered() ([]CourseView, error)
	Save(input CourseInput) (*CourseView, error)
	Update(input CourseInput) (*CourseView, error)
	Delete(id uint) error
}

type courseService struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	cfg            *config.Config
	logger         *slog.Logger
	validate       *validator.Validate
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	cfg *config.Config,
	logger *slog.Logger,
) CourseService {
	return &courseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		cfg:            cfg,
		logger:         logger,
		validate:       newValidator(),
	}
}

func (s *courseService) Filter(criteria repository.CourseCriteria) (repository.Page[CourseView], error) {
	if err := checkCriteria(criteria, criteria.Size, s.cfg); err != nil {
		return repository.Page[CourseView]{}, err
	}

	courses, total, err := s.courseRepo.Filter(criteria)
	if err != nil {
		return repository.Page[CourseView]{}, fmt.Errorf("failed to filter courses: %w", err)
	}

	views := make([]CourseView, 0, len(courses))
	for i := range courses {
		views = append(views, newCourseView(&courses[i]))
	}
	return repository.NewPage(views, total, criteria.Page, criteria.Size), nil
}

func (s *courseService) Get(id uint) (*CourseView, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	view := newCourseView(course)
	return &view, nil
}

func (s *courseService) ListUnfiltered() ([]CourseView, error) {
	courses, err := s.courseRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	views := make([]CourseView, 0, len(courses))
	for i := range courses {
		views = append(views, newCourseView(&courses[i]))
	}
	return views, nil
}

func (s *courseService) Save(input CourseInput) (*CourseView, error) {
	if err := s.checkInput(input, 0); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:      input.Name,
		Price:     input.Price,
		Status:    input.Status,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("✅ [Course] Course created", "course_id", course.ID, "name", course.Name)

	view := newCourseView(course)
	return &view, nil
}

func (s *courseService) Update(input CourseInput) (*CourseView, error) {
	course, err := s.courseRepo.FindByID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := s.checkInput(input, input.ID); err != nil {
		return nil, err
	}

	// Identity and creation metadata stay untouched.
	course.Name = input.Name
	course.Price = input.Price
	course.Status = input.Status
	course.StartDate = input.StartDate
	course.EndDate = input.EndDate

	if err := s.courseRepo.Update(course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("✅ [Course] Course updated", "course_id", course.ID)

	view := newCourseView(course)
	return &view, nil
}

// Delete soft-deletes a course and cascades to its enrollments. The two
// phases are each idempotent so repeated calls converge to the same state:
// course marked FINISHED and deleted, no active enrollment left behind.
func (s *courseService) Delete(id uint) error {
	course, err := s.courseRepo.FindByIDIncludingDeleted(id)
	if err != nil {
		return err
	}

	course.Status = models.CourseStatusFinished
	course.Deleted = true
	if err := s.courseRepo.Update(course); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if err := s.enrollmentRepo.SoftDeleteByCourse(id); err != nil {
		return fmt.Errorf("failed to cascade course deletion: %w", err)
	}

	s.logger.Info("🗑️ [Course] Course soft-deleted with enrollments", "course_id", id)
	return nil
}

// checkInput runs field validation plus the cross-field rules: date order
// and uniqueness of the name among overlapping non-deleted courses.
func (s *courseService) checkInput(input CourseInput, excludeID uint) error {
	if err := validateStruct(s.validate, input); err != nil {
		return err
	}
	if input.EndDate.Before(input.StartDate) {
		return newValidationError("startdate", "must not be after end date")
	}

	taken, err := s.courseRepo.ActiveNameOverlaps(input.Name, input.StartDate, input.EndDate, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check course name: %w", err)
	}
	if taken {
		return newValidationError("name", "course already exists")
	}
	return nil
}

// checkCriteria validates a criteria value and enforces the configured
// page size ceiling before any query runs.
func checkCriteria(criteria interface{ Validate() error }, size int, cfg *config.Config) error {
	if err := criteria.Validate(); err != nil {
		return err
	}
	if int64(size) > cfg.MaxPageSize {
		return &repository.CriteriaError{
			Field:   "size",
			Message: fmt.Sprintf("must be at most %d", cfg.MaxPageSize),
		}
	}
	return nil
}
