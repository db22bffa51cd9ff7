package repository

import (
	"fmt"
	"time"
)

// Sort directions accepted by every criteria type. Empty means ASC.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// CriteriaError rejects a criteria value before any query executes.
type CriteriaError struct {
	Field   string
	Message string
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("invalid criteria: %s: %s", e.Field, e.Message)
}

// Page is one page of a filtered result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// NewPage wraps content with paging metadata.
func NewPage[T any](content []T, total int64, number, size int) Page[T] {
	pages := int(total / int64(size))
	if total%int64(size) != 0 {
		pages++
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        number,
		Size:          size,
	}
}

// CourseCriteria filters, sorts and pages the course listing.
// Absent fields impose no constraint.
type CourseCriteria struct {
	Name      string     // substring match on course name
	Status    string     // exact match
	DateFrom  *time.Time // start_date lower bound
	DateTo    *time.Time // end_date upper bound
	PriceFrom *float64
	PriceTo   *float64
	Page      int
	Size      int
	OrderBy   string // defaults to name
	Direction string // ASC or DESC, defaults to ASC
}

var courseSortFields = map[string]bool{
	"name":       true,
	"price":      true,
	"status":     true,
	"start_date": true,
	"end_date":   true,
	"created_at": true,
}

// Validate fails fast on unknown sort fields and out-of-range paging.
func (c CourseCriteria) Validate() error {
	return validateCommon(c.OrderBy, c.Direction, c.Page, c.Size, courseSortFields)
}

func (c CourseCriteria) specification() *specification {
	spec := newSpecification(c.OrderBy, "name", c.Direction, c.Page, c.Size)
	spec.and("deleted = ?", false)
	if c.Name != "" {
		spec.and("name LIKE ?", "%"+c.Name+"%")
	}
	if c.Status != "" {
		spec.and("status = ?", c.Status)
	}
	if c.DateFrom != nil {
		spec.and("start_date >= ?", *c.DateFrom)
	}
	if c.DateTo != nil {
		spec.and("end_date <= ?", *c.DateTo)
	}
	if c.PriceFrom != nil {
		spec.and("price >= ?", *c.PriceFrom)
	}
	if c.PriceTo != nil {
		spec.and("price <= ?", *c.PriceTo)
	}
	return spec
}

// EnrollmentCriteria filters, sorts and pages the enrollment listing.
type EnrollmentCriteria struct {
	CourseID    uint // zero means any course
	UserID      uint // zero means any user
	Status      string
	Reference   string // substring match
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	Size        int
	OrderBy     string // defaults to created_at
	Direction   string
}

var enrollmentSortFields = map[string]bool{
	"course_id":  true,
	"user_id":    true,
	"status":     true,
	"price_paid": true,
	"created_at": true,
}

// Validate fails fast on unknown sort fields and out-of-range paging.
func (c EnrollmentCriteria) Validate() error {
	return validateCommon(c.OrderBy, c.Direction, c.Page, c.Size, enrollmentSortFields)
}

func (c EnrollmentCriteria) specification() *specification {
	spec := newSpecification(c.OrderBy, "created_at", c.Direction, c.Page, c.Size)
	spec.and("course_users.deleted = ?", false)
	if c.CourseID != 0 {
		spec.and("course_id = ?", c.CourseID)
	}
	if c.UserID != 0 {
		spec.and("user_id = ?", c.UserID)
	}
	if c.Status != "" {
		spec.and("course_users.status = ?", c.Status)
	}
	if c.Reference != "" {
		spec.and("reference LIKE ?", "%"+c.Reference+"%")
	}
	if c.CreatedFrom != nil {
		spec.and("course_users.created_at >= ?", *c.CreatedFrom)
	}
	if c.CreatedTo != nil {
		spec.and("course_users.created_at <= ?", *c.CreatedTo)
	}
	return spec
}

// UserCriteria filters, sorts and pages the student listing.
type UserCriteria struct {
	Name      string // substring match on first or last name
	Email     string // substring match
	Status    string
	Page      int
	Size      int
	OrderBy   string // defaults to last_name
	Direction string
}

var userSortFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"status":     true,
	"created_at": true,
}

// Validate fails fast on unknown sort fields and out-of-range paging.
func (c UserCriteria) Validate() error {
	return validateCommon(c.OrderBy, c.Direction, c.Page, c.Size, userSortFields)
}

func (c UserCriteria) specification() *specification {
	spec := newSpecification(c.OrderBy, "last_name", c.Direction, c.Page, c.Size)
	spec.and("deleted = ?", false)
	if c.Name != "" {
		like := "%" + c.Name + "%"
		spec.and("(first_name LIKE ? OR last_name LIKE ?)", like, like)
	}
	if c.Email != "" {
		spec.and("email LIKE ?", "%"+c.Email+"%")
	}
	if c.Status != "" {
		spec.and("status = ?", c.Status)
	}
	return spec
}

func validateCommon(orderBy, direction string, page, size int, allowed map[string]bool) error {
	if orderBy != "" && !allowed[orderBy] {
		return &CriteriaError{Field: "orderBy", Message: fmt.Sprintf("unknown sort field %q", orderBy)}
	}
	if direction != "" && direction != SortAsc && direction != SortDesc {
		return &CriteriaError{Field: "direction", Message: fmt.Sprintf("must be %s or %s", SortAsc, SortDesc)}
	}
	if page < 0 {
		return &CriteriaError{Field: "page", Message: "must not be negative"}
	}
	if size <= 0 {
		return &CriteriaError{Field: "size", Message: "must be greater than zero"}
	}
	return nil
}
