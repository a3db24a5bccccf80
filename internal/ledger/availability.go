package ledger

import (
	"context"
	"sort"

	"github.com/rufoabrahamguyo/king-taper/internal/domain/schedule"
)

// DaySlots is an availability listing ready for transport: times as
// "HH:MM" strings ascending, plus the status tag the client uses to
// explain an empty list.
type DaySlots struct {
	Times  []string        `json:"times"`
	Status schedule.Status `json:"status"`
	Reason string          `json:"reason,omitempty"`
}

// AvailableTimes lists every offerable start time for a service on a
// date. Results are cached per (date, service) until a mutation
// touches the date; a cold read goes straight to the store.
func (l *Ledger) AvailableTimes(ctx context.Context, dateStr, service string) (DaySlots, error) {
	_, dateKey, err := l.parseDate(dateStr)
	if err != nil {
		return DaySlots{}, err
	}

	if cached, ok := l.cache.Get(ctx, dateKey, service); ok {
		var out DaySlots
		if cached.Unmarshal(&out) {
			return out, nil
		}
	}

	out, err := l.computeAvailable(ctx, dateKey, service)
	if err != nil {
		return DaySlots{}, err
	}

	l.cache.Set(ctx, dateKey, service, out)
	return out, nil
}

func (l *Ledger) computeAvailable(ctx context.Context, dateKey, service string) (DaySlots, error) {
	date, _, err := l.parseDate(dateKey)
	if err != nil {
		return DaySlots{}, err
	}

	day, err := l.dayState(ctx, l.repo, dateKey, 0)
	if err != nil {
		return DaySlots{}, err
	}

	av := schedule.AvailableSlots(l.hours, l.catalog, service, date, l.now(), l.leadMin, day)

	times := make([]string, 0, len(av.Times))
	for _, t := range av.Times {
		times = append(times, t.String())
	}

	return DaySlots{Times: times, Status: av.Status, Reason: av.Reason}, nil
}

// BookedTimes returns every grid slot covered by an existing booking
// on the date, duration-aware: a 60-minute booking at 10:00 on a
// 30-minute grid occupies 10:00 and 10:30.
func (l *Ledger) BookedTimes(ctx context.Context, dateStr string) ([]string, error) {
	_, dateKey, err := l.parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	bookings, err := l.repo.BookingsForDate(ctx, dateKey)
	if err != nil {
		return nil, err
	}

	covered := make(map[schedule.TimeOfDay]struct{})
	interval := l.hours.Interval
	if interval <= 0 {
		interval = schedule.DefaultBusinessHours().Interval
	}

	for _, b := range bookings {
		start, err := schedule.ParseTimeOfDay(b.Time)
		if err != nil {
			continue
		}
		duration := l.catalog.Duration(b.Service)
		for offset := 0; offset < duration; offset += interval {
			covered[start.Add(offset)] = struct{}{}
		}
	}

	times := make([]string, 0, len(covered))
	for t := range covered {
		times = append(times, t.String())
	}
	sort.Strings(times)

	return times, nil
}
