package server

import (
	"fmt"
	"time"

	"github.com/clearday/clearday/pkg/sobriety"
)

const maxNoteLength = 1024

// Sanity bounds on dates accepted over the API. Computation itself
// clamps out-of-range inputs; this just rejects obvious garbage early.
var (
	minDate = sobriety.Date{Year: 2000, Month: time.January, Day: 1}
	maxDate = sobriety.Date{Year: 2100, Month: time.January, Day: 1}
)

func dateInBounds(d sobriety.Date) bool {
	return !d.Before(minDate) && d.Before(maxDate)
}

func validateProfile(req ProfileRequest) error {
	if req.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	if !dateInBounds(req.StartDate) {
		return fmt.Errorf("start_date out of range")
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return fmt.Errorf("unrecognized timezone %q", req.Timezone)
		}
	}
	return nil
}

func validateReset(req ResetRequest) error {
	if req.OccurredOn.IsZero() {
		return fmt.Errorf("occurred_on is required")
	}
	if !dateInBounds(req.OccurredOn) || !dateInBounds(req.RestartDate) {
		return fmt.Errorf("date out of range")
	}
	if req.RestartDate.Before(req.OccurredOn) {
		return fmt.Errorf("restart_date must not be before occurred_on")
	}
	if len(req.Note) > maxNoteLength {
		return fmt.Errorf("bad note: must be 0-%d characters", maxNoteLength)
	}
	return nil
}
