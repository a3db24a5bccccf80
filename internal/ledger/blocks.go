package ledger

import (
	"context"

	"github.com/rufoabrahamguyo/king-taper/internal/domain/schedule"
	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
	"github.com/rufoabrahamguyo/king-taper/internal/models"
)

// ReasonOverlapsBooking rejects a block that would retroactively cover
// time a customer already holds.
const ReasonOverlapsBooking = "overlapsBooking"

type BlockInput struct {
	Date     string // YYYY-MM-DD
	Start    string // HH:MM, ignored when WholeDay
	End      string // HH:MM, ignored when WholeDay
	Reason   string
	WholeDay bool
}

// AddBlockedTime commits an administrator block. A block overlapping
// any existing booking is rejected; overlapping other blocks is
// tolerated as harmless.
func (l *Ledger) AddBlockedTime(ctx context.Context, in BlockInput) (*models.BlockedTime, error) {
	_, dateKey, err := l.parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	block := &models.BlockedTime{
		Date:     dateKey,
		Reason:   in.Reason,
		WholeDay: in.WholeDay,
	}

	var start, end schedule.TimeOfDay
	if !in.WholeDay {
		if start, err = schedule.ParseTimeOfDay(in.Start); err != nil {
			return nil, err
		}
		if end, err = schedule.ParseTimeOfDay(in.End); err != nil {
			return nil, err
		}
		if start >= end {
			return nil, httperr.ErrBusiness("invalid_time")
		}
		block.StartTime = start.String()
		block.EndTime = end.String()
	}

	unlock := l.locks.lock(dateKey)
	defer unlock()

	err = l.repo.InTransaction(ctx, func(repo Repository) error {
		day, err := l.dayState(ctx, repo, dateKey, 0)
		if err != nil {
			return err
		}

		if in.WholeDay {
			if len(day.Bookings) > 0 {
				return httperr.ErrBusiness(ReasonOverlapsBooking)
			}
		} else {
			want := schedule.Interval{Start: start, End: end}
			for _, b := range day.Bookings {
				held := schedule.Interval{
					Start: b.Start,
					End:   b.Start.Add(l.catalog.Duration(b.Service)),
				}
				if want.Overlaps(held) {
					return httperr.ErrBusiness(ReasonOverlapsBooking)
				}
			}
		}

		return repo.CreateBlock(ctx, block)
	})
	if err != nil {
		return nil, err
	}

	l.invalidateDate(ctx, dateKey)
	l.dispatch("admin", "block_added", "blocked_time", block.ID, block)

	return block, nil
}

// ListBlockedTimes returns blocks, optionally for one date.
func (l *Ledger) ListBlockedTimes(ctx context.Context, date string) ([]models.BlockedTime, error) {
	if date == "" {
		return l.repo.ListBlocks(ctx, "")
	}

	_, dateKey, err := l.parseDate(date)
	if err != nil {
		return nil, err
	}
	return l.repo.ListBlocks(ctx, dateKey)
}

func (l *Ledger) RemoveBlockedTime(ctx context.Context, id uint) error {
	target, err := l.repo.GetBlock(ctx, id)
	if err != nil {
		return err
	}

	if err := l.repo.DeleteBlock(ctx, id); err != nil {
		return err
	}

	l.invalidateDate(ctx, target.Date)
	l.dispatch("admin", "block_removed", "blocked_time", id, target)

	return nil
}
