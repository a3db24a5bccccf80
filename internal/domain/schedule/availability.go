package schedule

import (
	"time"

	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
)

// Conflict reason codes. The booking endpoint surfaces them verbatim so
// the client can steer the customer to a valid alternative.
const (
	ReasonPast          = "past"
	ReasonAlreadyBooked = "alreadyBooked"
	ReasonDayBlocked    = "dayBlocked"
	ReasonRangeBlocked  = "rangeBlocked"
)

// BookedSlot is what the calendar needs to know about a committed
// booking: where it starts and which service it runs, the service
// determining its duration through the catalog.
type BookedSlot struct {
	Start   TimeOfDay
	Service string
}

// Block is an administrator-defined unavailable range. When WholeDay is
// set, Start/End are ignored and the whole date is closed.
type Block struct {
	WholeDay bool
	Start    TimeOfDay
	End      TimeOfDay
	Reason   string
}

// DayState is a read snapshot of everything committed for one date.
type DayState struct {
	Bookings []BookedSlot
	Blocks   []Block
}

// Status tags an availability listing.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusDayBlocked  Status = "dayBlocked"
	StatusFullyBooked Status = "fullyBooked"
)

// Availability is the result of listing offerable start times.
type Availability struct {
	Times  []TimeOfDay
	Status Status
	Reason string // block reason when Status is StatusDayBlocked
}

// wholeDayBlock returns the first whole-day block, if any.
func wholeDayBlock(day DayState) *Block {
	for i := range day.Blocks {
		if day.Blocks[i].WholeDay {
			return &day.Blocks[i]
		}
	}
	return nil
}

// occupied builds the set of unavailable intervals for the day: every
// booking's [start, start+duration) plus every partial block's range.
func occupied(day DayState, catalog ServiceCatalog) []Interval {
	ivs := make([]Interval, 0, len(day.Bookings)+len(day.Blocks))

	for _, b := range day.Bookings {
		ivs = append(ivs, Interval{
			Start: b.Start,
			End:   b.Start.Add(catalog.Duration(b.Service)),
		})
	}

	for _, bl := range day.Blocks {
		if bl.WholeDay {
			continue
		}
		ivs = append(ivs, Interval{Start: bl.Start, End: bl.End})
	}

	return ivs
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func dateBefore(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// tooSoon reports whether a slot on the given date falls inside the
// lead-time buffer. Only today is constrained; past dates are handled
// separately and future dates are always fine.
func tooSoon(date time.Time, slot TimeOfDay, now time.Time, leadMin int) bool {
	if !sameDay(date, now) {
		return false
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	return int(slot) <= nowMinutes+leadMin
}

// AvailableSlots computes every offerable start time for the requested
// service on the given date. Bookings and blocks already committed for
// the date arrive as a snapshot in day; now drives the same-day
// lead-time filter.
func AvailableSlots(
	hours BusinessHours,
	catalog ServiceCatalog,
	service string,
	date time.Time,
	now time.Time,
	leadMin int,
	day DayState,
) Availability {

	if bl := wholeDayBlock(day); bl != nil {
		return Availability{Times: []TimeOfDay{}, Status: StatusDayBlocked, Reason: bl.Reason}
	}

	if dateBefore(date, now) {
		return Availability{Times: []TimeOfDay{}, Status: StatusFullyBooked}
	}

	duration := catalog.Duration(service)
	taken := occupied(day, catalog)

	times := make([]TimeOfDay, 0, len(hours.Slots()))
	for _, slot := range hours.Slots() {
		if tooSoon(date, slot, now, leadMin) {
			continue
		}

		candidate := Interval{Start: slot, End: slot.Add(duration)}
		conflict := false
		for _, iv := range taken {
			if candidate.Overlaps(iv) {
				conflict = true
				break
			}
		}

		if !conflict {
			times = append(times, slot)
		}
	}

	status := StatusAvailable
	if len(times) == 0 {
		status = StatusFullyBooked
	}
	return Availability{Times: times, Status: status}
}

// ValidateRequest checks a single proposed (date, time, service) tuple
// against the same rules AvailableSlots applies to the whole grid. It
// is the single source of truth for "is this slot bookable": the
// listing and the commit-time check share the overlap semantics, so a
// slot offered as available is never rejected at commit (absent an
// intervening write). Returns nil when bookable, otherwise a business
// error carrying one of the Reason* codes.
func ValidateRequest(
	catalog ServiceCatalog,
	service string,
	date time.Time,
	t TimeOfDay,
	now time.Time,
	leadMin int,
	day DayState,
) error {

	if dateBefore(date, now) {
		return httperr.ErrBusiness(ReasonPast)
	}

	if tooSoon(date, t, now, leadMin) {
		return httperr.ErrBusiness(ReasonPast)
	}

	if wholeDayBlock(day) != nil {
		return httperr.ErrBusiness(ReasonDayBlocked)
	}

	candidate := Interval{Start: t, End: t.Add(catalog.Duration(service))}

	for _, b := range day.Bookings {
		iv := Interval{Start: b.Start, End: b.Start.Add(catalog.Duration(b.Service))}
		if candidate.Overlaps(iv) {
			return httperr.ErrBusiness(ReasonAlreadyBooked)
		}
	}

	for _, bl := range day.Blocks {
		if bl.WholeDay {
			continue
		}
		if candidate.Overlaps(Interval{Start: bl.Start, End: bl.End}) {
			return httperr.ErrBusiness(ReasonRangeBlocked)
		}
	}

	return nil
}
