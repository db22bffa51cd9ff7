package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// specification is the predicate built from a criteria value: an ordered
// list of AND-ed conditions plus sorting and paging. The same mechanism
// serves every criteria type; only the condition list differs.
type specification struct {
	conds  []condition
	order  string
	offset int
	limit  int
}

type condition struct {
	query string
	args  []any
}

func newSpecification(orderBy, defaultOrderBy, direction string, page, size int) *specification {
	if orderBy == "" {
		orderBy = defaultOrderBy
	}
	if direction == "" {
		direction = SortAsc
	}
	return &specification{
		order:  fmt.Sprintf("%s %s", orderBy, direction),
		offset: page * size,
		limit:  size,
	}
}

func (s *specification) and(query string, args ...any) {
	s.conds = append(s.conds, condition{query: query, args: args})
}

// where applies the composed predicate only; used for counting.
func (s *specification) where(db *gorm.DB) *gorm.DB {
	for _, c := range s.conds {
		db = db.Where(c.query, c.args...)
	}
	return db
}

// apply adds sorting and paging on top of the predicate.
func (s *specification) apply(db *gorm.DB) *gorm.DB {
	return s.where(db).Order(s.order).Offset(s.offset).Limit(s.limit)
}
