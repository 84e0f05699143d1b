package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyTotal is the running sum of the four tracked macros across all live
// entries of one user on one calendar day. Exactly one row per (user, date);
// created lazily on the first entry of the day and never deleted, only
// zeroed as entries are removed.
type DailyTotal struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:idx_daily_totals_user_date;not null"`
	Date   time.Time `gorm:"uniqueIndex:idx_daily_totals_user_date;not null"` // local midnight

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}
