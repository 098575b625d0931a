// utils/dates.go
package utils

import "time"

// BeginningOfDay truncates a time to midnight in its own location, so
// day-granularity comparisons ignore the time component.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
