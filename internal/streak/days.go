package streak

import (
	"time"

	"github.com/clearday/clearday/pkg/sobriety"
)

// CalendarDaysBetween counts the whole local calendar days elapsed from
// start to now in loc, clamped at zero for future start dates.
//
// The count is a difference of calendar dates, never elapsed time
// divided by 24h: a 23-hour spring-forward day and a 25-hour fall-back
// day each count as exactly one day. Both dates are re-anchored at UTC
// midnight before subtracting so the arithmetic itself sees no DST.
func CalendarDaysBetween(start sobriety.Date, now time.Time, loc *time.Location) int {
	today := sobriety.DateOf(now.In(loc))
	days := today.DaysSince(start)
	if days < 0 {
		return 0
	}
	return days
}
