package export

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/ikubinfo/enrollment-engine/internal/database/repository"
	"github.com/ikubinfo/enrollment-engine/internal/database/service"
)

// ErrExportFailed is the single opaque failure surfaced when a document
// cannot be assembled. The underlying cause is logged, never returned.
var ErrExportFailed = errors.New("failed to create export document")

// Service turns a filtered course query into report bytes. Every format
// is derived from the same filtered page the on-screen listing shows,
// never from an unfiltered dump.
type Service interface {
	CSV(criteria repository.CourseCriteria) ([]byte, error)
	Excel(criteria repository.CourseCriteria) ([]byte, error)
	PDF(criteria repository.CourseCriteria) ([]byte, error)
}

type exportService struct {
	courses service.CourseService
	logger  *slog.Logger
}

// NewService creates a new export service instance
func NewService(courses service.CourseService, logger *slog.Logger) Service {
	return &exportService{courses: courses, logger: logger}
}

func (s *exportService) CSV(criteria repository.CourseCriteria) ([]byte, error) {
	table, err := s.project(criteria)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeCSV(&buf, table); err != nil {
		s.logger.Error("❌ [Export] CSV encoding failed", "error", err)
		return nil, ErrExportFailed
	}
	return buf.Bytes(), nil
}

func (s *exportService) Excel(criteria repository.CourseCriteria) ([]byte, error) {
	table, err := s.project(criteria)
	if err != nil {
		return nil, err
	}

	out, err := writeExcel(table)
	if err != nil {
		s.logger.Error("❌ [Export] Spreadsheet encoding failed", "error", err)
		return nil, ErrExportFailed
	}
	return out, nil
}

func (s *exportService) PDF(criteria repository.CourseCriteria) ([]byte, error) {
	table, err := s.project(criteria)
	if err != nil {
		return nil, err
	}

	out, err := writePDF(table)
	if err != nil {
		s.logger.Error("❌ [Export] PDF encoding failed", "error", err)
		return nil, ErrExportFailed
	}
	return out, nil
}

// project runs the shared filtered query and flattens the page to rows.
// Criteria and query failures propagate untouched; they are not export
// failures.
func (s *exportService) project(criteria repository.CourseCriteria) (Table, error) {
	page, err := s.courses.Filter(criteria)
	if err != nil {
		return Table{}, err
	}
	return Project(page.Content), nil
}
