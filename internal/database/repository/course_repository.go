package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ikubinfo/enrollment-engine/internal/database/models"
)

// CourseRepository defines the interface for course data operations
type CourseRepository interface {
	Create(course *models.Course) error
	FindByID(id uint) (*models.Course, error)
	// FindByIDIncludingDeleted also returns soft-deleted courses so that
	// a repeated cascade delete can converge instead of failing.
	FindByIDIncludingDeleted(id uint) (*models.Course, error)
	Update(course *models.Course) error
	ListAll() ([]models.Course, error)
	Filter(criteria CourseCriteria) ([]models.Course, int64, error)
	ActiveNameOverlaps(name string, start, end time.Time, excludeID uint) (bool, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository instance
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

// FindByID returns ErrCourseNotFound for missing and soft-deleted courses alike.
func (r *courseRepository) FindByID(id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("id = ? AND deleted = ?", id, false).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByIDIncludingDeleted(id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// ListAll returns every non-deleted course without criteria applied.
func (r *courseRepository) ListAll() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("deleted = ?", false).Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Filter(criteria CourseCriteria) ([]models.Course, int64, error) {
	spec := criteria.specification()

	var total int64
	if err := spec.where(r.db.Model(&models.Course{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []models.Course
	err := spec.apply(r.db).Find(&courses).Error
	return courses, total, err
}

// ActiveNameOverlaps reports whether a non-deleted course other than
// excludeID holds the same name with an overlapping registration window.
func (r *courseRepository) ActiveNameOverlaps(name string, start, end time.Time, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Course{}).
		Where("name = ? AND deleted = ?", name, false).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

// Repository errors for courses
var ErrCourseNotFound = errors.New("course not found")
