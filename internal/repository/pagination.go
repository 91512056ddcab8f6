package repository

import "gorm.io/gorm"

// applyLimitOffset applies list window parameters, normalizing negative
// values. A non-positive limit leaves the query unbounded.
func applyLimitOffset(query *gorm.DB, limit, offset int) *gorm.DB {
	if query == nil {
		return query
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}

// applyPagination applies page/pageSize windows used by the account and
// admin listings.
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
