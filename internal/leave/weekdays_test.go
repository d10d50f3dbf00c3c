package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountWeekdays(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := day(2026, time.March, 2)
	friday := day(2026, time.March, 6)
	saturday := day(2026, time.March, 7)
	sunday := day(2026, time.March, 8)

	t.Run("monday through friday same week is five", func(t *testing.T) {
		assert.Equal(t, 5, countWeekdays(monday, friday))
	})

	t.Run("weekend only is zero", func(t *testing.T) {
		assert.Equal(t, 0, countWeekdays(saturday, sunday))
	})

	t.Run("single weekday is one", func(t *testing.T) {
		assert.Equal(t, 1, countWeekdays(monday, monday))
	})

	t.Run("range spanning a weekend skips it", func(t *testing.T) {
		// Friday through next Tuesday: Fri, Mon, Tue.
		assert.Equal(t, 3, countWeekdays(friday, day(2026, time.March, 10)))
	})

	t.Run("end before start is zero", func(t *testing.T) {
		assert.Equal(t, 0, countWeekdays(friday, monday))
	})

	t.Run("offset timezones do not shift days", func(t *testing.T) {
		loc := time.FixedZone("UTC+13", 13*60*60)
		start := time.Date(2026, time.March, 2, 23, 0, 0, 0, loc)
		end := time.Date(2026, time.March, 6, 1, 0, 0, 0, loc)
		assert.Equal(t, 5, countWeekdays(start, end))
	})
}
