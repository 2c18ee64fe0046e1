package repository

import (
	"strings"
	"time"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

// DateRange bounds a date column by whole days. Both ends must be set for
// the range to apply; a single bound is ignored.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Bounds returns the inclusive start and exclusive end of the range.
func (r DateRange) Bounds() (time.Time, time.Time, bool) {
	if r.From == nil || r.To == nil {
		return time.Time{}, time.Time{}, false
	}
	from := truncateDay(*r.From)
	to := truncateDay(*r.To).AddDate(0, 0, 1)
	return from, to, true
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// orderClause resolves a caller supplied sort field through an allow-list.
func orderClause(columns map[string]string, sortBy, sortOrder, fallback string) (string, error) {
	column := fallback
	if sortBy != "" {
		c, ok := columns[sortBy]
		if !ok {
			return "", apperrors.ErrInvalidSortField
		}
		column = c
	}

	switch strings.ToUpper(sortOrder) {
	case "", "DESC":
		return column + " DESC", nil
	case "ASC":
		return column + " ASC", nil
	default:
		return "", apperrors.ErrInvalidSortOrder
	}
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
