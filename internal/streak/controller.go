package streak

import (
	"context"
	"sync"
	"time"

	"github.com/clearday/clearday/internal/logger"
	"github.com/clearday/clearday/pkg/sobriety"
)

// DataSource is the external store the controller reads from. Profile
// returns nil when the user has no profile yet; LatestResetEvent returns
// nil when no reset has ever been logged. Retry and timeout policy
// belong to the implementation, not the controller.
type DataSource interface {
	Profile(ctx context.Context, userID string) (*sobriety.Profile, error)
	LatestResetEvent(ctx context.Context, userID string) (*sobriety.ResetEvent, error)
}

// Controller is the long-lived entry point of the streak engine. It
// fetches profile and reset-event data for one user, composes the streak
// state, and keeps it current by recomputing at every local midnight and
// on every data or timezone change.
//
// All state is guarded by one mutex; the midnight timer is owned
// exclusively by the controller and there is never more than one pending.
type Controller struct {
	source DataSource
	userID string
	sched  Scheduler
	clock  func() time.Time

	// OnChange, when set before Start, is called with each newly
	// composed state (including error states). Called without the
	// controller lock held.
	OnChange func(sobriety.StreakState)

	mu       sync.Mutex
	profile  *sobriety.Profile
	reset    *sobriety.ResetEvent
	state    sobriety.StreakState
	timezone string
	closed   bool
}

// NewController wires a controller for one user against a data source.
func NewController(source DataSource, userID string) *Controller {
	return &Controller{
		source: source,
		userID: userID,
		state:  sobriety.StreakState{Loading: true},
	}
}

func (c *Controller) now() time.Time {
	if c.clock != nil {
		return c.clock()
	}
	return time.Now()
}

// Start performs the initial fetch, composes the first state and arms
// the midnight timer. A fetch error is reported through the state's Err
// field, not returned: the controller stays usable and a later Refresh
// can recover.
func (c *Controller) Start(ctx context.Context) sobriety.StreakState {
	return c.Refresh(ctx)
}

// Refresh re-fetches profile and reset-event data, recomposes, and
// re-arms the timer if the effective timezone changed. Used for initial
// load and whenever the caller knows the underlying records changed.
func (c *Controller) Refresh(ctx context.Context) sobriety.StreakState {
	profile, reset, err := c.fetch(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return c.state
	}
	if err != nil {
		// Keep whatever data we already had; the composed state
		// degrades rather than crashes.
		logger.Error("streak data fetch failed", "user_id", c.userID, "error", err)
	} else {
		c.profile = profile
		c.reset = reset
	}
	c.mu.Unlock()

	return c.recompute("refresh", err)
}

func (c *Controller) fetch(ctx context.Context) (*sobriety.Profile, *sobriety.ResetEvent, error) {
	profile, err := c.source.Profile(ctx, c.userID)
	if err != nil {
		return nil, nil, err
	}
	reset, err := c.source.LatestResetEvent(ctx, c.userID)
	if err != nil {
		return nil, nil, err
	}
	return profile, reset, nil
}

// recompute rebuilds the state from the held data and "now", rearming
// the scheduler when the effective timezone differs from the one the
// pending timer was armed for.
func (c *Controller) recompute(trigger string, fetchErr error) sobriety.StreakState {
	c.mu.Lock()
	if c.closed {
		defer c.mu.Unlock()
		return c.state
	}

	var tzName string
	if c.profile != nil {
		tzName = c.profile.Timezone
	}
	loc := ResolveTimezone(tzName)

	state := Compose(c.profile, c.reset, c.now())
	state.Err = fetchErr
	c.state = state

	rearm := c.timezone != loc.String()
	c.timezone = loc.String()
	onChange := c.OnChange
	c.mu.Unlock()

	if rearm {
		// Old boundary is wrong for the new zone; replace the timer.
		c.sched.Disarm()
		c.sched.Arm(loc, c.onMidnight)
	}

	logger.Debug("streak state recomputed",
		"user_id", c.userID,
		"trigger", trigger,
		"current_streak_days", state.CurrentStreakDays,
		"journey_days", state.JourneyDays,
		"timezone", state.Timezone)

	if onChange != nil {
		onChange(state)
	}
	return state
}

// onMidnight runs on each scheduler fire. No re-fetch: only the date has
// changed, the held records are still current.
func (c *Controller) onMidnight() {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		// Stale fire racing Close; ignore.
		return
	}
	c.recompute("midnight", nil)
}

// State returns the most recently composed state.
func (c *Controller) State() sobriety.StreakState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close disarms the midnight timer and marks the controller disposed.
// Idempotent; fires already in flight no-op afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.sched.Disarm()
}
