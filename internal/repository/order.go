package repository

import "gorm.io/gorm"

// applyOrder applies an allow-listed ordering to the query. The requested
// field may carry a leading "-" for descending order; anything outside the
// allow-list falls back to the default clause.
func applyOrder(q *gorm.DB, requested string, allowed map[string]string, fallback string) *gorm.DB {
	if requested == "" {
		return q.Order(fallback)
	}

	desc := false
	if requested[0] == '-' {
		desc = true
		requested = requested[1:]
	}

	col, ok := allowed[requested]
	if !ok {
		return q.Order(fallback)
	}
	if desc {
		return q.Order(col + " DESC")
	}
	return q.Order(col + " ASC")
}
