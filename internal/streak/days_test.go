package streak

import (
	"testing"
	"time"

	"github.com/clearday/clearday/pkg/sobriety"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("failed to load location %s: %v", name, err)
	}
	return loc
}

func TestCalendarDaysBetween(t *testing.T) {
	newYork := mustLoc(t, "America/New_York")
	chicago := mustLoc(t, "America/Chicago")

	tests := []struct {
		name  string
		start string
		now   string
		loc   *time.Location
		want  int
	}{
		{
			name:  "same local day is zero",
			start: "2024-04-10",
			now:   "2024-04-10T23:30:00-04:00",
			loc:   newYork,
			want:  0,
		},
		{
			name:  "one day earlier is one regardless of hour",
			start: "2024-04-09",
			now:   "2024-04-10T00:10:00-04:00",
			loc:   newYork,
			want:  1,
		},
		{
			name:  "across spring forward",
			start: "2024-03-01",
			now:   "2024-03-15T12:00:00Z",
			loc:   newYork,
			want:  14,
		},
		{
			name:  "across fall back",
			start: "2024-11-01",
			now:   "2024-11-05T12:00:00Z",
			loc:   newYork,
			want:  4,
		},
		{
			name:  "across leap day",
			start: "2024-02-15",
			now:   "2024-04-10T12:00:00Z",
			loc:   chicago,
			want:  55,
		},
		{
			name:  "future start date clamps to zero",
			start: "2025-06-01",
			now:   "2024-04-10T12:00:00Z",
			loc:   newYork,
			want:  0,
		},
		{
			name:  "utc evening is still yesterday in new york",
			start: "2024-04-10",
			now:   "2024-04-10T03:00:00Z", // Apr 9, 23:00 EDT
			loc:   newYork,
			want:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start := sobriety.MustDate(tc.start)
			now, err := time.Parse(time.RFC3339, tc.now)
			if err != nil {
				t.Fatalf("bad test instant: %v", err)
			}
			got := CalendarDaysBetween(start, now, tc.loc)
			if got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestCalendarDaysBetween_Deterministic(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	start := sobriety.MustDate("2024-01-01")
	now, _ := time.Parse(time.RFC3339, "2024-04-10T12:00:00Z")

	first := CalendarDaysBetween(start, now, loc)
	for i := 0; i < 100; i++ {
		if got := CalendarDaysBetween(start, now, loc); got != first {
			t.Fatalf("iteration %d: got %d want %d", i, got, first)
		}
	}
}

// The same UTC instant can land on different calendar dates in two
// timezones; the resulting day counts differ by at most one.
func TestCalendarDaysBetween_TimezoneSensitivity(t *testing.T) {
	newYork := mustLoc(t, "America/New_York")
	tokyo := mustLoc(t, "Asia/Tokyo")

	start := sobriety.MustDate("2024-04-01")
	now, _ := time.Parse(time.RFC3339, "2024-04-10T02:00:00Z") // Apr 9 in NY, Apr 10 in Tokyo

	ny := CalendarDaysBetween(start, now, newYork)
	tk := CalendarDaysBetween(start, now, tokyo)

	if ny != 8 || tk != 9 {
		t.Fatalf("got new_york=%d tokyo=%d, want 8 and 9", ny, tk)
	}
}

func TestCalendarDaysBetween_NeverNegative(t *testing.T) {
	loc := mustLoc(t, "Australia/Sydney")
	now, _ := time.Parse(time.RFC3339, "2024-04-10T12:00:00Z")

	for days := -5; days <= 5; days++ {
		start := sobriety.DateOf(now.In(loc)).AddDays(days)
		if got := CalendarDaysBetween(start, now, loc); got < 0 {
			t.Fatalf("start offset %d: got negative count %d", days, got)
		}
	}
}
