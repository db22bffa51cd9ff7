package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ikubinfo/enrollment-engine/internal/config"
	"github.com/ikubinfo/enrollment-engine/internal/database"
	"github.com/ikubinfo/enrollment-engine/internal/database/repository"
	"github.com/ikubinfo/enrollment-engine/internal/database/service"
	"github.com/ikubinfo/enrollment-engine/internal/export"
	"github.com/ikubinfo/enrollment-engine/internal/logger"
)

func main() {
	format := flag.String("format", "csv", "report format: csv, xlsx or pdf")
	name := flag.String("name", "", "filter: course name substring")
	status := flag.String("status", "", "filter: course status")
	page := flag.Int("page", 0, "zero-based page number")
	size := flag.Int("size", 50, "page size")
	sort := flag.String("sort", "name", "sort field")
	dir := flag.String("dir", "ASC", "sort direction: ASC or DESC")
	out := flag.String("out", "", "output file (default report.<format>)")
	flag.Parse()

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Export] Starting report export...",
		"format", *format,
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	db, err := database.Connect(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Repositories
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	// 5. Initialize Services
	courseService := service.NewCourseService(courseRepo, enrollmentRepo, cfg, appLogger)
	exportService := export.NewService(courseService, appLogger)

	criteria := repository.CourseCriteria{
		Name:      *name,
		Status:    *status,
		Page:      *page,
		Size:      *size,
		OrderBy:   *sort,
		Direction: *dir,
	}

	var report []byte
	switch *format {
	case "csv":
		report, err = exportService.CSV(criteria)
	case "xlsx":
		report, err = exportService.Excel(criteria)
	case "pdf":
		report, err = exportService.PDF(criteria)
	default:
		appLogger.Error("❌ Unknown format", "format", *format)
		os.Exit(2)
	}
	if err != nil {
		appLogger.Error("❌ Failed to build report", "error", err)
		os.Exit(1)
	}

	target := *out
	if target == "" {
		target = fmt.Sprintf("report.%s", *format)
	}
	if err := os.WriteFile(target, report, 0o644); err != nil {
		appLogger.Error("❌ Failed to write report file", "file", target, "error", err)
		os.Exit(1)
	}

	appLogger.Info("✅ [Export] Report written", "file", target, "bytes", len(report))
}
