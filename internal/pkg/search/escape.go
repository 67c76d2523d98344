// Package search provides helpers shared by the SQL query builders.
package search

import (
	"strings"
	"time"
)

// DefaultQueryTimeout bounds filtered article queries to protect the pool
// from runaway ILIKE scans.
const DefaultQueryTimeout = 5 * time.Second

// EscapeILIKE escapes the ILIKE wildcard characters in user-supplied input so
// a search term matches literally. The returned value is wrapped in % for
// substring matching.
func EscapeILIKE(input string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(input) + "%"
}
