package ledger

import (
	"context"

	"github.com/rufoabrahamguyo/king-taper/internal/models"
)

// Storage error codes surfaced through httperr.BusinessError.
const (
	CodeNotFound         = "not_found"
	CodeStoreUnavailable = "store_unavailable"

	// CodeDuplicateSlot is raised when the (date, time) unique index
	// fires. The ledger folds it into the alreadyBooked conflict.
	CodeDuplicateSlot = "duplicate_slot"
)

// Repository is the durable store behind the ledger. Implementations
// must make InTransaction atomic: either every write inside commits or
// none do. Reads inside a transaction must see committed state and,
// for BookingsForDate, take write locks so concurrent reserve
// transactions for the same date serialize at the store as well as at
// the ledger's per-date mutex.
type Repository interface {
	BookingsForDate(ctx context.Context, date string) ([]models.Booking, error)
	BlocksForDate(ctx context.Context, date string) ([]models.BlockedTime, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, start, end string) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id uint) error

	CreateBlock(ctx context.Context, block *models.BlockedTime) error
	GetBlock(ctx context.Context, id uint) (*models.BlockedTime, error)
	ListBlocks(ctx context.Context, date string) ([]models.BlockedTime, error)
	DeleteBlock(ctx context.Context, id uint) error

	InTransaction(ctx context.Context, fn func(Repository) error) error
}
