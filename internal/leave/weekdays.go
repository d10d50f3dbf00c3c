package leave

import "time"

// countWeekdays walks day by day from start to end inclusive and counts
// Monday through Friday. Dates are normalized to midnight UTC first so a
// timezone offset cannot shift a day across a weekend boundary.
func countWeekdays(start, end time.Time) int {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
