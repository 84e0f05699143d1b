package models

import (
	"time"

	"gorm.io/gorm"
)

// FoodEntry is one logged occurrence of a food, immutable once created
// except for deletion. Nutrient values are already scaled by Quantity.
// The four tracked macros are always stored (0 when the label had no value);
// everything else is nullable so "not detected" survives a round trip.
type FoodEntry struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null"`
	DailyTotalID uint      `gorm:"index;not null"`
	Date         time.Time `gorm:"index;not null"` // local midnight

	Name     string `gorm:"not null"`
	Brand    string
	Quantity float64 // serving multiplier, > 0

	Calories float64
	Protein  float64 // g
	Carbs    float64 // g
	Fat      float64 // g

	SaturatedFat *float64 // g
	TransFat     *float64 // g
	Cholesterol  *float64 // mg
	Sodium       *float64 // mg
	Fiber        *float64 // g
	Sugar        *float64 // g
	AddedSugar   *float64 // g
	VitaminD     *float64 // mcg
	Calcium      *float64 // mg
	Iron         *float64 // mg
	Potassium    *float64 // mg
}
