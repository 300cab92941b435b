// Package sobriety holds the public data types shared between the
// server, the CLI client and the streak engine.
package sobriety

import (
	"bytes"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a civil calendar date with no time-of-day component. It is
// interpreted as local midnight in whatever timezone the caller supplies.
// The zero value means "absent" and marshals to JSON null.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses an ISO-8601 date string (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// MustDate is ParseDate for literals in tests and examples.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// In returns the instant of local midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// DaysSince returns the number of whole calendar days from o to d,
// negative if d is before o. Both dates are anchored at UTC midnight so
// the subtraction is immune to DST.
func (d Date) DaysSince(o Date) int {
	return int(d.In(time.UTC).Sub(o.In(time.UTC)) / (24 * time.Hour))
}

// Before reports whether d is an earlier calendar date than o.
func (d Date) Before(o Date) bool {
	return d.DaysSince(o) < 0
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("bad date literal %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Profile is the per-user sobriety profile held by the store. StartDate
// is the original, never-changing start of the journey; a zero StartDate
// means the user has not completed onboarding. Timezone is an IANA name
// or empty for the host default.
type Profile struct {
	ID        string `json:"id"`
	StartDate Date   `json:"start_date"`
	Timezone  string `json:"timezone,omitempty"`
}

// ResetEvent records a relapse: the date it occurred and the date the
// current streak restarted. Events are append-only and never edited.
type ResetEvent struct {
	ID          string `json:"id"`
	OccurredOn  Date   `json:"occurred_on"`
	RestartDate Date   `json:"restart_date"`
	Note        string `json:"note,omitempty"`
}

// StreakState is the derived result of the streak engine. It is
// recomputed on demand and never persisted.
type StreakState struct {
	CurrentStreakDays      int         `json:"current_streak_days"`
	JourneyDays            int         `json:"journey_days"`
	JourneyStartDate       Date        `json:"journey_start_date"`
	CurrentStreakStartDate Date        `json:"current_streak_start_date"`
	HasResetEvents         bool        `json:"has_reset_events"`
	MostRecentResetEvent   *ResetEvent `json:"most_recent_reset_event,omitempty"`
	Timezone               string      `json:"timezone"`
	Loading                bool        `json:"loading"`
	Err                    error       `json:"-"`
}
