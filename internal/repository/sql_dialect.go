package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName resolves the dialect name, defaulting to sqlite.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildSearchCondition builds a case-insensitive substring condition over
// the given columns, returning the clause and its argument count.
// Postgres gets ILIKE; sqlite LIKE is already case-insensitive for ASCII.
func buildSearchCondition(db *gorm.DB, columns []string) (string, int) {
	return buildSearchConditionByDialect(dbDialectName(db), columns)
}

func buildSearchConditionByDialect(dialect string, columns []string) (string, int) {
	operator := likeOperatorByDialect(dialect)
	parts := make([]string, 0, len(columns))
	argCount := 0
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
		argCount++
	}
	return strings.Join(parts, " OR "), argCount
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// repeatLikeArgs repeats the LIKE pattern for each placeholder.
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
