package schedule

// BusinessHours describes the repeating daily slot grid.
type BusinessHours struct {
	Start    TimeOfDay
	End      TimeOfDay
	Interval int // minutes between slot starts
}

// DefaultBusinessHours matches the shop's production schedule:
// 09:00-21:00 on a 30-minute grid.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Start:    9 * 60,
		End:      21 * 60,
		Interval: 30,
	}
}

// Slots returns every candidate start time on the grid, ascending:
// Start + k*Interval for all k with the result strictly before End.
// The slice is rebuilt on each call; callers are free to memoize.
func (h BusinessHours) Slots() []TimeOfDay {
	if h.Interval <= 0 || h.Start >= h.End {
		return nil
	}

	var slots []TimeOfDay
	for cur := h.Start; cur < h.End; cur = cur.Add(h.Interval) {
		slots = append(slots, cur)
	}
	return slots
}

// Contains reports whether t is a valid grid slot for these hours.
func (h BusinessHours) Contains(t TimeOfDay) bool {
	if h.Interval <= 0 || t < h.Start || t >= h.End {
		return false
	}
	return int(t-h.Start)%h.Interval == 0
}
