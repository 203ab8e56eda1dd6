package app

import (
	"regexp"
	"strings"
)

// Long statements (seed inserts, event log batches) get truncated so span
// payloads stay small.
const maxTracedQueryLength = 512

var queryWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses whitespace so multi-line SQL reads as a
// single line in trace viewers.
func formatDBQueryForTrace(query string) string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return trimmed
	}

	flat := queryWhitespace.ReplaceAllString(trimmed, " ")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}
	return flat
}
