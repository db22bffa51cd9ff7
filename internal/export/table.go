package export

import (
	"strconv"

	"github.com/ikubinfo/enrollment-engine/internal/database/service"
)

// dateLayout renders dates as dd-MM-yyyy in every report format.
const dateLayout = "02-01-2006"

// Table is the single header+row contract shared by all encoders. Each
// encoder is a pure consumer: identical input yields byte-identical row
// content, only the container format differs.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Headers returns the fixed, ordered report header.
func Headers() []string {
	return []string{
		"Course Name",
		"Price",
		"Status",
		"Registration Start",
		"Registration End",
	}
}

// Row flattens one course into display strings in header order.
func Row(course service.CourseView) []string {
	return []string{
		course.Name,
		strconv.FormatFloat(course.Price, 'f', 2, 64),
		course.Status,
		course.StartDate.Format(dateLayout),
		course.EndDate.Format(dateLayout),
	}
}

// Project builds the report table for a filtered course page.
func Project(courses []service.CourseView) Table {
	rows := make([][]string, 0, len(courses))
	for _, course := range courses {
		rows = append(rows, Row(course))
	}
	return Table{Headers: Headers(), Rows: rows}
}
