package services

import (
	"github.com/Shwetank-F/daily-diet-scan/models"

	"gorm.io/gorm"
)

// CatalogService keeps the per-user memo of previously entered foods used to
// pre-fill manual entry. It stores per-serving (unscaled) values and is
// allowed to be stale; the ledger never depends on it.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Remember upserts the memo row keyed by (user, name, brand).
func (s *CatalogService) Remember(userID uint, name, brand string, perServing NutritionRecord) error {
	item := models.CatalogItem{UserID: userID, Name: name, Brand: brand}
	return s.db.
		Where("user_id = ? AND name = ? AND brand = ?", userID, name, brand).
		Assign(map[string]interface{}{
			"calories": orZero(perServing.Calories),
			"protein":  orZero(perServing.Protein),
			"carbs":    orZero(perServing.Carbs),
			"fat":      orZero(perServing.Fat),
			"sodium":   orZero(perServing.Sodium),
			"sugar":    orZero(perServing.Sugar),
		}).
		FirstOrCreate(&item).Error
}

// Search returns the user's remembered foods whose name starts with the
// query, most recently updated first.
func (s *CatalogService) Search(userID uint, query string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	q := s.db.Where("user_id = ?", userID)
	if query != "" {
		q = q.Where("name LIKE ?", query+"%")
	}
	err := q.Order("updated_at DESC").Limit(20).Find(&items).Error
	return items, err
}
