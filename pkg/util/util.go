package util

import "time"

// dueLayout renders a timestamp in the phrasing Todoist's natural-language
// date parser understands best, e.g. "due 03/15/2024 at 11 PM".
const dueLayout = "due 01/02/2006 at 03 PM"

// FormatDue converts a Canvas due or lock timestamp into a Todoist due
// expression. A nil basis means the task gets no due date at all.
func FormatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dueLayout)
}
