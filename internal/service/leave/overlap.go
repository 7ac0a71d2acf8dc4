package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
)

// OverlapDays counts the calendar dates shared by the inclusive leave range [start, end]
// and the inclusive window [windowStart, windowEnd]. Disjoint ranges give 0.
// Only the date part of each bound is used.
func OverlapDays(start, end, windowStart, windowEnd time.Time) int {
	from := start
	if dateutil.DaysBetween(from, windowStart) > 0 {
		from = windowStart
	}
	to := end
	if dateutil.DaysBetween(windowEnd, to) > 0 {
		to = windowEnd
	}

	days := dateutil.InclusiveDays(from, to)
	if days < 0 {
		return 0
	}
	return days
}

// InclusiveDays is the length of a leave from start to end, both dates counted.
func InclusiveDays(start, end time.Time) int {
	return dateutil.InclusiveDays(start, end)
}
