package models

import "gorm.io/gorm"

// CatalogItem is a per-user memo of a previously entered food, keyed by
// (user, name, brand) and holding per-serving (unscaled) values. It only
// speeds up future manual entry; it may be stale and is never consulted by
// the ledger itself.
type CatalogItem struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex:idx_catalog_user_name_brand;not null"`
	Name   string `gorm:"uniqueIndex:idx_catalog_user_name_brand;not null"`
	Brand  string `gorm:"uniqueIndex:idx_catalog_user_name_brand"`

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Sodium   float64
	Sugar    float64
}
