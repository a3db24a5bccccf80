package models

import "time"

// BlockedTime is an administrator-defined unavailable range. With
// WholeDay set the start/end columns are ignored and the whole date is
// closed; otherwise [StartTime, EndTime) is unavailable.
type BlockedTime struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date      string `gorm:"size:10;not null;index:idx_blocked_times_date" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Reason    string `gorm:"size:255" json:"reason"`
	WholeDay  bool   `json:"whole_day"`

	CreatedAt time.Time `json:"created_at"`
}
