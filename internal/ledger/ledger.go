package ledger

import (
	"context"
	"time"

	"github.com/rufoabrahamguyo/king-taper/internal/audit"
	"github.com/rufoabrahamguyo/king-taper/internal/cache"
	"github.com/rufoabrahamguyo/king-taper/internal/domain/schedule"
	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
	"github.com/rufoabrahamguyo/king-taper/internal/models"
)

const dateLayout = "2006-01-02"

// Ledger owns every mutation of the booking calendar. It is
// constructed once at startup with its storage injected and passed by
// reference to the handlers; nothing else touches the tables.
type Ledger struct {
	repo    Repository
	hours   schedule.BusinessHours
	catalog schedule.ServiceCatalog
	leadMin int
	loc     *time.Location

	locks *dateLocks
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher

	validateAdminEdits bool

	now func() time.Time
}

// Options carries the policy knobs the ledger needs beyond storage.
type Options struct {
	Hours              schedule.BusinessHours
	Catalog            schedule.ServiceCatalog
	LeadTimeMin        int
	Location           *time.Location
	Cache              *cache.AvailabilityCache // optional
	Audit              *audit.Dispatcher        // optional
	ValidateAdminEdits bool
}

func New(repo Repository, opts Options) *Ledger {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = schedule.DefaultCatalog()
	}

	l := &Ledger{
		repo:               repo,
		hours:              opts.Hours,
		catalog:            catalog,
		leadMin:            opts.LeadTimeMin,
		loc:                loc,
		locks:              newDateLocks(),
		cache:              opts.Cache,
		audit:              opts.Audit,
		validateAdminEdits: opts.ValidateAdminEdits,
	}
	l.now = func() time.Time { return time.Now().In(loc) }
	return l
}

// SetNow overrides the clock. Test hook.
func (l *Ledger) SetNow(now func() time.Time) {
	l.now = now
}

// ServiceDuration looks up a service's duration in minutes, with the
// catalog's default for unknown names.
func (l *Ledger) ServiceDuration(service string) int {
	return l.catalog.Duration(service)
}

// parseDate parses and normalizes a "YYYY-MM-DD" string in the shop's
// timezone.
func (l *Ledger) parseDate(s string) (time.Time, string, error) {
	t, err := time.ParseInLocation(dateLayout, s, l.loc)
	if err != nil {
		return time.Time{}, "", httperr.ErrBusiness("invalid_date")
	}
	return t, t.Format(dateLayout), nil
}

// dayState reads a date's committed bookings and blocks through the
// given repository (plain or transactional) and converts them to the
// scheduling core's value types. Rows with unparsable times are
// skipped; the storage boundary is the only place that ever looks at
// the string form. excludeID drops one booking from the snapshot, used
// when re-validating an admin edit against everything else.
func (l *Ledger) dayState(ctx context.Context, repo Repository, date string, excludeID uint) (schedule.DayState, error) {
	bookings, err := repo.BookingsForDate(ctx, date)
	if err != nil {
		return schedule.DayState{}, err
	}

	blocks, err := repo.BlocksForDate(ctx, date)
	if err != nil {
		return schedule.DayState{}, err
	}

	day := schedule.DayState{}

	for _, b := range bookings {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		start, err := schedule.ParseTimeOfDay(b.Time)
		if err != nil {
			continue
		}
		day.Bookings = append(day.Bookings, schedule.BookedSlot{
			Start:   start,
			Service: b.Service,
		})
	}

	for _, bl := range blocks {
		day.Blocks = append(day.Blocks, toBlock(bl))
	}

	return day, nil
}

func toBlock(bl models.BlockedTime) schedule.Block {
	if bl.WholeDay {
		return schedule.Block{WholeDay: true, Reason: bl.Reason}
	}

	start, err1 := schedule.ParseTimeOfDay(bl.StartTime)
	end, err2 := schedule.ParseTimeOfDay(bl.EndTime)
	if err1 != nil || err2 != nil {
		// An unreadable partial block closes the whole day rather than
		// silently freeing time the admin meant to hold.
		return schedule.Block{WholeDay: true, Reason: bl.Reason}
	}

	return schedule.Block{Start: start, End: end, Reason: bl.Reason}
}

func (l *Ledger) invalidateDate(ctx context.Context, date string) {
	l.cache.InvalidateDate(ctx, date)
}
