package app

import "strings"

// tracedQueryLimit bounds the SQL text attached to a span attribute.
const tracedQueryLimit = 400

// compactQueryForTrace collapses a query to a single line and truncates it
// so span attributes stay small.
func compactQueryForTrace(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) <= tracedQueryLimit {
		return compact
	}
	return compact[:tracedQueryLimit] + " [truncated]"
}
