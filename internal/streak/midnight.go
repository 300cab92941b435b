package streak

import (
	"sync"
	"time"

	"github.com/clearday/clearday/internal/logger"
)

// minTimerDelay floors the computed wait so clock skew or a fire landing
// exactly on the boundary can never produce a zero or negative timer.
const minTimerDelay = time.Second

// DurationUntilNextMidnight returns how long from now until the next
// 00:00:00 wall-clock time in loc. Tomorrow's midnight is built with a
// fresh offset lookup for that date rather than by adding 24h, so a DST
// transition between now and the boundary shortens or stretches the wait
// instead of missing the boundary.
func DurationUntilNextMidnight(now time.Time, loc *time.Location) time.Duration {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	d := next.Sub(now)
	if d < minTimerDelay {
		d = minTimerDelay
	}
	return d
}

// Scheduler owns at most one pending timer and signals the start of each
// new local calendar day. Arm replaces any pending timer; after firing
// the scheduler re-arms itself for the following midnight, so the
// interval tracks the 23/24/25-hour day lengths around DST transitions.
type Scheduler struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64

	// clock is replaceable in tests; nil means time.Now.
	clock func() time.Time
}

func (s *Scheduler) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}

// Arm cancels any pending timer and schedules onFire for the next local
// midnight in loc. After onFire returns the scheduler arms itself again
// for the following midnight, until Disarm or a newer Arm supersedes it.
func (s *Scheduler) Arm(loc *time.Location, onFire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.armLocked(s.gen, loc, onFire)
}

func (s *Scheduler) armLocked(gen uint64, loc *time.Location, onFire func()) {
	if s.timer != nil {
		s.timer.Stop()
	}
	d := DurationUntilNextMidnight(s.now(), loc)
	logger.Debug("midnight timer armed", "timezone", loc.String(), "fires_in", d)
	s.timer = time.AfterFunc(d, func() {
		s.fire(gen, loc, onFire)
	})
}

func (s *Scheduler) fire(gen uint64, loc *time.Location, onFire func()) {
	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale {
		// Disarmed or re-armed while this fire was in flight.
		return
	}

	onFire()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.armLocked(gen, loc, onFire)
}

// Disarm cancels the pending timer if any. Safe to call when idle; any
// fire already in flight becomes a no-op.
func (s *Scheduler) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Armed reports whether a timer is currently pending.
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}
