package models

import "time"

// Booking is one committed appointment. Date is "YYYY-MM-DD" and Time
// is "HH:MM" in the shop's timezone; the scheduling core converts both
// to its own value types at the repository boundary.
//
// The (date, time) unique index is defense-in-depth only: it cannot
// catch overlaps between different start times of different durations,
// so the ledger serializes reserve calls per date on top of it.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string  `gorm:"size:100;not null" json:"name"`
	Email   string  `gorm:"size:100" json:"email"`
	Phone   string  `gorm:"size:20;not null" json:"phone"`
	Service string  `gorm:"size:100;not null" json:"service"`
	Price   float64 `json:"price"`

	Date string `gorm:"size:10;not null;index:idx_bookings_date;uniqueIndex:uq_bookings_date_time" json:"date"`
	Time string `gorm:"size:5;not null;uniqueIndex:uq_bookings_date_time" json:"time"`

	Message string `gorm:"size:500" json:"message"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
