package domain

import "strings"

type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// SQL returns the ORDER BY keyword. The value never comes from caller text.
func (d SortDirection) SQL() string {
	if d == SortDescending {
		return "DESC"
	}
	return "ASC"
}

// ParseSortDirection accepts "asc" or "desc" in any case; anything else is
// ascending.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return SortDescending
	}
	return SortAscending
}
