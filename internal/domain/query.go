package domain

import (
	"strings"
)

// Query is a parsed search input.
type Query struct {
	Raw         string   // Original input
	Text        string   // Normalized text matched against titles
	FolderHints []string // Normalized folder fragments, outermost first
}

// ParseQuery splits input on "/" into folder hints and the title text.
// Examples:
//   - "gh" -> text "gh"
//   - "dev/gh" -> hints ["dev"], text "gh"
//   - "work / wiki / onboarding" -> hints ["work", "wiki"], text "onboarding"
func ParseQuery(input string) *Query {
	q := &Query{Raw: strings.TrimSpace(input)}
	if q.Raw == "" {
		return q
	}

	parts := splitAndClean(q.Raw, "/")
	if len(parts) == 0 {
		return q
	}

	q.Text = parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		q.FolderHints = append(q.FolderHints, Normalize(p))
	}
	q.Text = Normalize(q.Text)
	return q
}

// Scoped reports whether the query names folders.
func (q *Query) Scoped() bool {
	return len(q.FolderHints) > 0
}

// InScope reports whether every folder hint matches one of the bookmark's
// folders, in path order.
func (q *Query) InScope(b *Bookmark) bool {
	next := 0
	for _, folder := range b.Folder {
		if next == len(q.FolderHints) {
			break
		}
		if strings.Contains(Normalize(folder), q.FolderHints[next]) {
			next++
		}
	}
	return next == len(q.FolderHints)
}

// splitAndClean splits a string by separator and returns non-empty parts
func splitAndClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
