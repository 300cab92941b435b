package streak

import (
	"time"

	"github.com/clearday/clearday/internal/logger"
)

// ResolveTimezone returns the location for an IANA timezone name taken
// from a profile. Empty or unrecognized names fall back to the host
// default rather than failing: a wrong-but-consistent day boundary beats
// no streak at all, and the fallback is logged so it can be spotted.
func ResolveTimezone(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unrecognized timezone, using host default", "timezone", name, "error", err)
		return time.Local
	}
	return loc
}
