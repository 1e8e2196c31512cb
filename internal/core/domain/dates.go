package domain

import "time"

// dueDateLayouts are the accepted due-date inputs: full RFC 3339 timestamps
// or a bare calendar date.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDueDate parses a due date from its wire representation.
func ParseDueDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dueDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
