package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
)

// TimeOfDay is the canonical time representation used by the scheduling
// core: minutes since midnight. It is constructed once at the storage and
// transport boundaries; everything past those boundaries compares plain
// integers instead of branching on string/Date shapes.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, httperr.ErrBusiness("invalid_time")
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, httperr.ErrBusiness("invalid_time")
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, httperr.ErrBusiness("invalid_time")
	}

	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns the time shifted by the given number of minutes. The result
// may pass midnight; callers working on a single calendar day treat it as
// a point on an unbounded minute axis.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Interval is a half-open [Start, End) range within one day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether the two half-open intervals intersect. Exact
// back-to-back adjacency (one ending where the other starts) does not
// count as overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}
