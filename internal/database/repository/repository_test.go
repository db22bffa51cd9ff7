package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ikubinfo/enrollment-engine/internal/database/models"
	"github.com/ikubinfo/enrollment-engine/internal/database/repository"
)

// setupTestDB creates a new in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Role{}, &models.User{}, &models.Course{}, &models.CourseUser{})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Role{Name: models.RoleStudent}).Error)

	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedCourse(t *testing.T, db *gorm.DB, name, status string, price float64) *models.Course {
	course := &models.Course{
		Name:      name,
		Price:     price,
		Status:    status,
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 1),
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func seedUser(t *testing.T, db *gorm.DB, first, last string) *models.User {
	user := &models.User{
		FirstName: first,
		LastName:  last,
		Phone:     "0691234567",
		Email:     first + "@example.com",
		Status:    models.UserStatusEnrolled,
		RoleID:    1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// ==================== COURSE REPOSITORY TESTS ====================

func TestCourseRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewCourseRepository(db)

	active := seedCourse(t, db, "Java Basics", models.CourseStatusPlanned, 300)
	deleted := seedCourse(t, db, "Old Course", models.CourseStatusFinished, 100)
	require.NoError(t, db.Model(deleted).Update("deleted", true).Error)

	tests := []struct {
		name    string
		id      uint
		wantErr error
	}{
		{name: "found", id: active.ID},
		{name: "missing", id: 9999, wantErr: repository.ErrCourseNotFound},
		{name: "soft-deleted", id: deleted.ID, wantErr: repository.ErrCourseNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course, err := repo.FindByID(tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, course)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Java Basics", course.Name)
			}
		})
	}
}

func TestCourseRepository_FindByIDIncludingDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewCourseRepository(db)

	deleted := seedCourse(t, db, "Old Course", models.CourseStatusFinished, 100)
	require.NoError(t, db.Model(deleted).Update("deleted", true).Error)

	course, err := repo.FindByIDIncludingDeleted(deleted.ID)
	assert.NoError(t, err)
	assert.True(t, course.Deleted)

	_, err = repo.FindByIDIncludingDeleted(9999)
	assert.ErrorIs(t, err, repository.ErrCourseNotFound)
}

func TestCourseRepository_Filter(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewCourseRepository(db)

	seedCourse(t, db, "Java Basics", models.CourseStatusPlanned, 300)
	seedCourse(t, db, "Advanced Java", models.CourseStatusOngoing, 500)
	seedCourse(t, db, "Go Fundamentals", models.CourseStatusPlanned, 250)
	removed := seedCourse(t, db, "Java Legacy", models.CourseStatusFinished, 100)
	require.NoError(t, db.Model(removed).Update("deleted", true).Error)

	t.Run("name substring, sorted ascending", func(t *testing.T) {
		courses, total, err := repo.Filter(repository.CourseCriteria{
			Name:      "Java",
			Page:      0,
			Size:      10,
			OrderBy:   "name",
			Direction: repository.SortAsc,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, courses, 2)
		assert.Equal(t, "Advanced Java", courses[0].Name)
		assert.Equal(t, "Java Basics", courses[1].Name)
	})

	t.Run("price range", func(t *testing.T) {
		from, to := 260.0, 600.0
		courses, total, err := repo.Filter(repository.CourseCriteria{
			PriceFrom: &from,
			PriceTo:   &to,
			Page:      0,
			Size:      10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, c := range courses {
			assert.GreaterOrEqual(t, c.Price, from)
		}
	})

	t.Run("paging", func(t *testing.T) {
		courses, total, err := repo.Filter(repository.CourseCriteria{
			Page:    1,
			Size:    2,
			OrderBy: "name",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, courses, 1)
	})
}

func TestCourseRepository_ActiveNameOverlaps(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewCourseRepository(db)

	existing := seedCourse(t, db, "Java Basics", models.CourseStatusPlanned, 300)

	tests := []struct {
		name      string
		course    string
		start     time.Time
		end       time.Time
		excludeID uint
		want      bool
	}{
		{
			name:   "same name overlapping window",
			course: "Java Basics",
			start:  date(2024, time.February, 1),
			end:    date(2024, time.April, 1),
			want:   true,
		},
		{
			name:   "same name disjoint window",
			course: "Java Basics",
			start:  date(2024, time.June, 1),
			end:    date(2024, time.July, 1),
			want:   false,
		},
		{
			name:   "different name",
			course: "Go Fundamentals",
			start:  date(2024, time.January, 1),
			end:    date(2024, time.March, 1),
			want:   false,
		},
		{
			name:      "own row excluded on update",
			course:    "Java Basics",
			start:     date(2024, time.January, 1),
			end:       date(2024, time.March, 1),
			excludeID: existing.ID,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken, err := repo.ActiveNameOverlaps(tt.course, tt.start, tt.end, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, taken)
		})
	}
}

// ==================== ENROLLMENT REPOSITORY TESTS ====================

func TestEnrollmentRepository_FindByKey(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewEnrollmentRepository(db)

	course := seedCourse(t, db, "Java Basics", models.CourseStatusPlanned, 300)
	user := seedUser(t, db, "Alba", "Hoxha")

	enrollment := &models.CourseUser{
		CourseID: course.ID,
		UserID:   user.ID,
		Status:   models.UserStatusEnrolled,
		Deleted:  true,
	}
	require.NoError(t, db.Create(enrollment).Error)

	// The key lookup must see soft-deleted rows: reactivation depends on it.
	found, err := repo.FindByKey(course.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, found.Deleted)

	_, err = repo.FindByKey(course.ID, 9999)
	assert.ErrorIs(t, err, repository.ErrEnrollmentNotFound)
}

func TestEnrollmentRepository_ListActiveByCourse(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewEnrollmentRepository(db)

	course := seedCourse(t, db, "Java Basics", models.CourseStatusPlanned, 300)
	active := seedUser(t, db, "Alba", "Hoxha")
	removed := seedUser(t, db, "Besnik", "Dema")

	require.NoError(t, db.Create(&models.CourseUser{CourseID: course.ID, UserID: active.ID}).Error)
	require.NoError(t, db.Create(&models.CourseUser{CourseID: course.ID, UserID: removed.ID, Deleted: true}).Error)

	enrollments, err := repo.ListActiveByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, active.ID, enrollments[0].UserID)
	assert.Equal(t, "Alba", enrollments[0].User.FirstName)
}

func TestEnrollmentRepository_SoftDeleteByCourse(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewEnrollmentRepository(db)

	course := seedCourse(t, db, "Java Basics", models.CourseStatusPlanned, 300)
	other := seedCourse(t, db, "Go Fundamentals", models.CourseStatusPlanned, 250)
	user := seedUser(t, db, "Alba", "Hoxha")

	require.NoError(t, db.Create(&models.CourseUser{CourseID: course.ID, UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.CourseUser{CourseID: other.ID, UserID: user.ID}).Error)

	require.NoError(t, repo.SoftDeleteByCourse(course.ID))

	var deleted, untouched models.CourseUser
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&deleted).Error)
	require.NoError(t, db.Where("course_id = ?", other.ID).First(&untouched).Error)
	assert.True(t, deleted.Deleted)
	assert.False(t, untouched.Deleted)
}

func TestEnrollmentRepository_Filter(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewEnrollmentRepository(db)

	course := seedCourse(t, db, "Java Basics", models.CourseStatusPlanned, 300)
	alba := seedUser(t, db, "Alba", "Hoxha")
	besnik := seedUser(t, db, "Besnik", "Dema")

	require.NoError(t, db.Create(&models.CourseUser{
		CourseID: course.ID, UserID: alba.ID, Status: models.UserStatusEnrolled, PricePaid: 200,
	}).Error)
	require.NoError(t, db.Create(&models.CourseUser{
		CourseID: course.ID, UserID: besnik.ID, Status: models.UserStatusWithdrawn, PricePaid: 50,
	}).Error)

	enrollments, total, err := repo.Filter(repository.EnrollmentCriteria{
		CourseID:  course.ID,
		Status:    models.UserStatusEnrolled,
		Page:      0,
		Size:      10,
		OrderBy:   "price_paid",
		Direction: repository.SortDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, enrollments, 1)
	assert.Equal(t, alba.ID, enrollments[0].UserID)
	assert.Equal(t, "Java Basics", enrollments[0].Course.Name)
	assert.Equal(t, "Alba", enrollments[0].User.FirstName)
}

// ==================== CRITERIA VALIDATION TESTS ====================

func TestCriteria_Validate(t *testing.T) {
	tests := []struct {
		name      string
		criteria  interface{ Validate() error }
		wantField string
	}{
		{
			name:     "valid course criteria",
			criteria: repository.CourseCriteria{Page: 0, Size: 10, OrderBy: "name", Direction: "ASC"},
		},
		{
			name:      "unknown sort field",
			criteria:  repository.CourseCriteria{Page: 0, Size: 10, OrderBy: "password"},
			wantField: "orderBy",
		},
		{
			name:      "bad direction",
			criteria:  repository.CourseCriteria{Page: 0, Size: 10, Direction: "SIDEWAYS"},
			wantField: "direction",
		},
		{
			name:      "negative page",
			criteria:  repository.CourseCriteria{Page: -1, Size: 10},
			wantField: "page",
		},
		{
			name:      "zero size",
			criteria:  repository.CourseCriteria{Page: 0, Size: 0},
			wantField: "size",
		},
		{
			name:      "enrollment criteria rejects course-only field",
			criteria:  repository.EnrollmentCriteria{Page: 0, Size: 10, OrderBy: "price"},
			wantField: "orderBy",
		},
		{
			name:     "user criteria accepts last_name",
			criteria: repository.UserCriteria{Page: 0, Size: 10, OrderBy: "last_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cerr *repository.CriteriaError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.wantField, cerr.Field)
		})
	}
}

func TestNewPage(t *testing.T) {
	page := repository.NewPage([]string{"a", "b"}, 5, 1, 2)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 2, page.Size)
}
