package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE/ILIKE pattern matching term literally anywhere in a column.
// Backslash is the default LIKE escape character in PostgreSQL.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
