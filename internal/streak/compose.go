package streak

import (
	"time"

	"github.com/clearday/clearday/pkg/sobriety"
)

// Compose derives the streak state from a profile, the most recent reset
// event (nil when none exists) and a point in time. It is pure: the same
// inputs always produce the same state, so it is safe to call again on
// every midnight fire or data refresh.
//
// The journey always counts from the profile's original start date; the
// current streak counts from the latest reset's restart date when one
// exists, else from the same start date.
func Compose(profile *sobriety.Profile, reset *sobriety.ResetEvent, now time.Time) sobriety.StreakState {
	if profile == nil || profile.StartDate.IsZero() {
		state := sobriety.StreakState{}
		if profile != nil {
			loc := ResolveTimezone(profile.Timezone)
			state.Timezone = loc.String()
		}
		if reset != nil {
			state.HasResetEvents = true
			state.MostRecentResetEvent = reset
		}
		return state
	}

	loc := ResolveTimezone(profile.Timezone)

	journeyStart := profile.StartDate
	streakStart := journeyStart
	if reset != nil && !reset.RestartDate.IsZero() {
		streakStart = reset.RestartDate
	}

	return sobriety.StreakState{
		CurrentStreakDays:      CalendarDaysBetween(streakStart, now, loc),
		JourneyDays:            CalendarDaysBetween(journeyStart, now, loc),
		JourneyStartDate:       journeyStart,
		CurrentStreakStartDate: streakStart,
		HasResetEvents:         reset != nil,
		MostRecentResetEvent:   reset,
		Timezone:               loc.String(),
	}
}

// MostRecentReset picks the reset event that governs the current streak:
// latest by occurred-on date, ties broken by the latest restart date.
// Returns nil for an empty slice.
func MostRecentReset(events []sobriety.ResetEvent) *sobriety.ResetEvent {
	var latest *sobriety.ResetEvent
	for i := range events {
		e := &events[i]
		if latest == nil {
			latest = e
			continue
		}
		switch cmp := e.OccurredOn.DaysSince(latest.OccurredOn); {
		case cmp > 0:
			latest = e
		case cmp == 0:
			if latest.RestartDate.Before(e.RestartDate) {
				latest = e
			}
		}
	}
	return latest
}
