package database

import "strings"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern builds a LIKE pattern matching keyword as a literal
// substring. The query must declare the escape: `LIKE ? ESCAPE '!'`.
func ContainsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}
