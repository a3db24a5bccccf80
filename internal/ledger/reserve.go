package ledger

import (
	"context"
	"encoding/json"

	"github.com/rufoabrahamguyo/king-taper/internal/audit"
	"github.com/rufoabrahamguyo/king-taper/internal/domain/schedule"
	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
	"github.com/rufoabrahamguyo/king-taper/internal/models"
)

type ReserveInput struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Price   float64
	Date    string // YYYY-MM-DD
	Time    string // HH:MM
	Message string
}

func (in ReserveInput) validate() error {
	if in.Name == "" || in.Phone == "" || in.Service == "" || in.Price <= 0 || in.Date == "" || in.Time == "" {
		return httperr.ErrBusiness("missing_fields")
	}
	return nil
}

// Reserve atomically commits a booking if, and only if, the slot is
// still free at commit time. The per-date mutex serializes concurrent
// reserve calls for the same date; the storage transaction then
// re-reads the committed state and re-runs the validator before the
// insert, so two simultaneous requests for overlapping slots can never
// both succeed. A timed-out or failed transaction leaves no partial
// booking behind.
func (l *Ledger) Reserve(ctx context.Context, in ReserveInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	date, dateKey, err := l.parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	start, err := schedule.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, err
	}

	if !l.hours.Contains(start) {
		return nil, httperr.ErrBusiness("outside_hours")
	}

	unlock := l.locks.lock(dateKey)
	defer unlock()

	booking := &models.Booking{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Price:   in.Price,
		Date:    dateKey,
		Time:    start.String(),
		Message: in.Message,
	}

	err = l.repo.InTransaction(ctx, func(repo Repository) error {
		day, err := l.dayState(ctx, repo, dateKey, 0)
		if err != nil {
			return err
		}

		if err := schedule.ValidateRequest(
			l.catalog, in.Service, date, start, l.now(), l.leadMin, day,
		); err != nil {
			return err
		}

		return repo.CreateBooking(ctx, booking)
	})
	if err != nil {
		// The unique index firing means another writer beat us to the
		// exact slot between lock scopes (e.g. a second process).
		if httperr.IsBusiness(err, CodeDuplicateSlot) {
			return nil, httperr.ErrBusiness(schedule.ReasonAlreadyBooked)
		}
		return nil, err
	}

	l.invalidateDate(ctx, dateKey)
	l.dispatch("customer", "booking_created", "booking", booking.ID, booking)

	return booking, nil
}

func (l *Ledger) dispatch(actor, action, entity string, id uint, metadata any) {
	var meta any
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			meta = json.RawMessage(b)
		}
	}

	l.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   action,
		Entity:   entity,
		EntityID: &id,
		Metadata: meta,
	})
}
