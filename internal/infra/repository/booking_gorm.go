package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
	"github.com/rufoabrahamguyo/king-taper/internal/ledger"
	"github.com/rufoabrahamguyo/king-taper/internal/models"
)

// BookingGormRepository is the postgres-backed store behind the
// ledger. Every error leaving this package is a business code: rows
// that do not exist map to not_found, the (date,time) unique index to
// duplicate_slot, and anything else (connection refused, timeouts) to
// store_unavailable so writes fail closed.
type BookingGormRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// InTransaction runs fn against a transactional copy of the
// repository. Reads inside it take row locks (see BookingsForDate), so
// reserve's check-then-insert is serialized at the database even
// across processes.
func (r *BookingGormRepository) InTransaction(ctx context.Context, fn func(ledger.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx, inTx: true})
	})
}

// --------------------------------------------------
// Per-date reads
// --------------------------------------------------

func (r *BookingGormRepository) BookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var bookings []models.Booking
	if err := q.
		Where("date = ?", date).
		Order("time ASC").
		Find(&bookings).Error; err != nil {
		return nil, r.storeErr("list bookings for date", err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) BlocksForDate(ctx context.Context, date string) ([]models.BlockedTime, error) {
	var blocks []models.BlockedTime
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, r.storeErr("list blocks for date", err)
	}

	return blocks, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness(ledger.CodeDuplicateSlot)
		}
		return r.storeErr("create booking", err)
	}
	return nil
}

func (r *BookingGormRepository) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(ledger.CodeNotFound)
		}
		return nil, r.storeErr("get booking", err)
	}
	return &booking, nil
}

func (r *BookingGormRepository) ListBookings(ctx context.Context, start, end string) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if start != "" && end != "" {
		q = q.Where("date BETWEEN ? AND ?", start, end)
	}

	var bookings []models.Booking
	if err := q.Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, r.storeErr("list bookings", err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness(ledger.CodeDuplicateSlot)
		}
		return r.storeErr("update booking", err)
	}
	return nil
}

func (r *BookingGormRepository) DeleteBooking(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return r.storeErr("delete booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(ledger.CodeNotFound)
	}
	return nil
}

// --------------------------------------------------
// Blocked times
// --------------------------------------------------

func (r *BookingGormRepository) CreateBlock(ctx context.Context, block *models.BlockedTime) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		return r.storeErr("create block", err)
	}
	return nil
}

func (r *BookingGormRepository) GetBlock(ctx context.Context, id uint) (*models.BlockedTime, error) {
	var block models.BlockedTime
	if err := r.db.WithContext(ctx).First(&block, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(ledger.CodeNotFound)
		}
		return nil, r.storeErr("get block", err)
	}
	return &block, nil
}

func (r *BookingGormRepository) ListBlocks(ctx context.Context, date string) ([]models.BlockedTime, error) {
	q := r.db.WithContext(ctx).Model(&models.BlockedTime{})
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var blocks []models.BlockedTime
	if err := q.Order("date ASC, start_time ASC").Find(&blocks).Error; err != nil {
		return nil, r.storeErr("list blocks", err)
	}

	return blocks, nil
}

func (r *BookingGormRepository) DeleteBlock(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.BlockedTime{}, id)
	if res.Error != nil {
		return r.storeErr("delete block", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(ledger.CodeNotFound)
	}
	return nil
}

// --------------------------------------------------
// Error mapping
// --------------------------------------------------

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *BookingGormRepository) storeErr(op string, err error) error {
	zap.L().Error("booking store error", zap.String("op", op), zap.Error(err))
	return httperr.ErrBusiness(ledger.CodeStoreUnavailable)
}

// Compile-time check
var _ ledger.Repository = (*BookingGormRepository)(nil)
