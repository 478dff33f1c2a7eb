package repositories

import "strings"

// orderClause builds an ORDER BY fragment from whitelisted columns. Anything
// outside the whitelist falls back to fallback ASC, so callers never reach the
// database with an unchecked identifier.
func orderClause(sortBy, sortOrder string, columns map[string]string, fallback string) string {
	column, ok := columns[sortBy]
	if !ok {
		return fallback + " ASC"
	}
	direction := strings.ToUpper(strings.TrimSpace(sortOrder))
	if direction != "DESC" {
		direction = "ASC"
	}
	return column + " " + direction
}

// likePattern wraps a search term for case-insensitive substring matching.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
