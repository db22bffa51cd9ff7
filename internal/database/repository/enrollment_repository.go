package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ikubinfo/enrollment-engine/internal/database/models"
)

// EnrollmentRepository defines the interface for course-user enrollment
// data operations. The (courseID, userID) composite key is the only
// handle on an enrollment row.
type EnrollmentRepository interface {
	// FindByKey sees soft-deleted rows: reactivation depends on it.
	FindByKey(courseID, userID uint) (*models.CourseUser, error)
	Create(enrollment *models.CourseUser) error
	Save(enrollment *models.CourseUser) error
	ListActiveByCourse(courseID uint) ([]models.CourseUser, error)
	Filter(criteria EnrollmentCriteria) ([]models.CourseUser, int64, error)
	SoftDeleteByCourse(courseID uint) error
	SoftDeleteByUser(userID uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository instance
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) FindByKey(courseID, userID uint) (*models.CourseUser, error) {
	var enrollment models.CourseUser
	err := r.db.Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) Create(enrollment *models.CourseUser) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) Save(enrollment *models.CourseUser) error {
	return r.db.Save(enrollment).Error
}

func (r *enrollmentRepository) ListActiveByCourse(courseID uint) ([]models.CourseUser, error) {
	var enrollments []models.CourseUser
	err := r.db.Where("course_id = ? AND deleted = ?", courseID, false).
		Preload("User").
		Order("created_at ASC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepository) Filter(criteria EnrollmentCriteria) ([]models.CourseUser, int64, error) {
	spec := criteria.specification()

	var total int64
	if err := spec.where(r.db.Model(&models.CourseUser{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollments []models.CourseUser
	err := spec.apply(r.db).
		Preload("Course").
		Preload("User").
		Find(&enrollments).Error
	return enrollments, total, err
}

func (r *enrollmentRepository) SoftDeleteByCourse(courseID uint) error {
	return r.db.Model(&models.CourseUser{}).
		Where("course_id = ? AND deleted = ?", courseID, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"updated_at": time.Now(),
		}).Error
}

func (r *enrollmentRepository) SoftDeleteByUser(userID uint) error {
	return r.db.Model(&models.CourseUser{}).
		Where("user_id = ? AND deleted = ?", userID, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"updated_at": time.Now(),
		}).Error
}

// Repository errors for enrollments
var ErrEnrollmentNotFound = errors.New("enrollment not found")
