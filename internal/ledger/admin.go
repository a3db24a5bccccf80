package ledger

import (
	"context"

	"github.com/rufoabrahamguyo/king-taper/internal/domain/schedule"
	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
	"github.com/rufoabrahamguyo/king-taper/internal/models"
)

// ListBookings returns committed bookings newest first, optionally
// restricted to an inclusive date range. Both bounds must be given
// together or the filter is ignored, matching the admin UI's behavior.
func (l *Ledger) ListBookings(ctx context.Context, start, end string) ([]models.Booking, error) {
	if start == "" || end == "" {
		return l.repo.ListBookings(ctx, "", "")
	}

	if _, startKey, err := l.parseDate(start); err == nil {
		if _, endKey, err := l.parseDate(end); err == nil {
			return l.repo.ListBookings(ctx, startKey, endKey)
		}
	}

	return nil, httperr.ErrBusiness("invalid_date")
}

// UpdateBooking is an administrator override replacing the full field
// set. By default it does not re-run conflict validation - the admin
// is trusted to resolve clashes by hand. With ValidateAdminEdits set,
// the new slot is checked against everything except the booking being
// edited, under the same per-date serialization as Reserve.
func (l *Ledger) UpdateBooking(ctx context.Context, id uint, in ReserveInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	date, dateKey, err := l.parseDate(in.Date)
	if err != nil {
		return err
	}

	start, err := schedule.ParseTimeOfDay(in.Time)
	if err != nil {
		return err
	}

	existing, err := l.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	previousDate := existing.Date

	unlock := l.locks.lock(dateKey)
	defer unlock()

	err = l.repo.InTransaction(ctx, func(repo Repository) error {
		if l.validateAdminEdits {
			day, err := l.dayState(ctx, repo, dateKey, id)
			if err != nil {
				return err
			}
			if err := schedule.ValidateRequest(
				l.catalog, in.Service, date, start, l.now(), l.leadMin, day,
			); err != nil {
				return err
			}
		}

		existing.Name = in.Name
		existing.Email = in.Email
		existing.Phone = in.Phone
		existing.Service = in.Service
		existing.Price = in.Price
		existing.Date = dateKey
		existing.Time = start.String()
		existing.Message = in.Message

		return repo.UpdateBooking(ctx, existing)
	})
	if err != nil {
		if httperr.IsBusiness(err, CodeDuplicateSlot) {
			return httperr.ErrBusiness(schedule.ReasonAlreadyBooked)
		}
		return err
	}

	l.invalidateDate(ctx, dateKey)
	if previousDate != dateKey {
		l.invalidateDate(ctx, previousDate)
	}
	l.dispatch("admin", "booking_updated", "booking", id, existing)

	return nil
}

// DeleteBooking removes a booking permanently. Deletion is terminal;
// no cancelled state is kept.
func (l *Ledger) DeleteBooking(ctx context.Context, id uint) error {
	existing, err := l.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	if err := l.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	l.invalidateDate(ctx, existing.Date)
	l.dispatch("admin", "booking_deleted", "booking", id, existing)

	return nil
}
