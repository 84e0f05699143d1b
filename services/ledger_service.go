package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shwetank-F/daily-diet-scan/models"

	"gorm.io/gorm"
)

// LedgerService maintains the invariant that each DailyTotal row equals the
// sum of all live entries for that user and day. Totals are mutated with
// relative increments (UPDATE ... SET x = x + delta) rather than
// read-modify-write, so interleaved additions from two devices cannot lose
// each other's contribution.
type LedgerService struct {
	db      *gorm.DB
	catalog *CatalogService
	hub     *RealtimeHub
}

// catalog and hub may be nil; both are best-effort collaborators.
func NewLedgerService(db *gorm.DB, catalog *CatalogService, hub *RealtimeHub) *LedgerService {
	return &LedgerService{db: db, catalog: catalog, hub: hub}
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// RecordEntry persists one logged food and folds its scaled values into the
// day's totals. perServing fields left nil stay nil on the stored entry; the
// four tracked macros fall back to 0 so the totals arithmetic is always
// defined.
func (s *LedgerService) RecordEntry(
	userID uint,
	date time.Time,
	name, brand string,
	quantity float64,
	perServing NutritionRecord,
) (*models.FoodEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	scaled := perServing.Scale(quantity)
	day := dayStartLocal(date)

	total, err := s.findOrCreateDayTotal(userID, day)
	if err != nil {
		return nil, fmt.Errorf("day totals lookup: %w", err)
	}

	entry := &models.FoodEntry{
		UserID:       userID,
		DailyTotalID: total.ID,
		Date:         day,
		Name:         name,
		Brand:        strings.TrimSpace(brand),
		Quantity:     quantity,

		Calories: orZero(scaled.Calories),
		Protein:  orZero(scaled.Protein),
		Carbs:    orZero(scaled.Carbs),
		Fat:      orZero(scaled.Fat),

		SaturatedFat: scaled.SaturatedFat,
		TransFat:     scaled.TransFat,
		Cholesterol:  scaled.Cholesterol,
		Sodium:       scaled.Sodium,
		Fiber:        scaled.Fiber,
		Sugar:        scaled.Sugar,
		AddedSugar:   scaled.AddedSugar,
		VitaminD:     scaled.VitaminD,
		Calcium:      scaled.Calcium,
		Iron:         scaled.Iron,
		Potassium:    scaled.Potassium,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("persist entry: %w", err)
	}

	if err := s.applyDelta(total.ID, entry.Calories, entry.Protein, entry.Carbs, entry.Fat); err != nil {
		return entry, &TotalsUpdateError{EntryID: entry.ID, Err: err}
	}

	// memo upsert is best effort; a failure here never rolls back the entry
	if s.catalog != nil {
		if err := s.catalog.Remember(userID, name, entry.Brand, perServing); err != nil {
			log.Printf("catalog memo upsert failed for user %d: %v", userID, err)
		}
	}
	s.broadcastTotals(userID, day)

	return entry, nil
}

// DeleteEntry removes a logged food and subtracts its originally stored
// scaled values from the day's totals. Deleting an id that is already gone
// is a no-op.
func (s *LedgerService) DeleteEntry(userID, entryID uint) error {
	var entry models.FoodEntry
	err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // already deleted
	}
	if err != nil {
		return fmt.Errorf("load entry: %w", err)
	}

	if err := s.db.Delete(&entry).Error; err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	var total models.DailyTotal
	if err := s.db.First(&total, entry.DailyTotalID).Error; err != nil {
		return &TotalsUpdateError{EntryID: entry.ID, Err: err}
	}
	// reversal uses the values stored on the entry, floored at zero so
	// drift from interleaved updates shows up as a low total, not a
	// negative one
	total.Calories = floorZero(total.Calories - entry.Calories)
	total.Protein = floorZero(total.Protein - entry.Protein)
	total.Carbs = floorZero(total.Carbs - entry.Carbs)
	total.Fat = floorZero(total.Fat - entry.Fat)
	if err := s.db.Save(&total).Error; err != nil {
		return &TotalsUpdateError{EntryID: entry.ID, Err: err}
	}
	s.broadcastTotals(userID, entry.Date)

	return nil
}

// LoadDay returns the day's totals and its entries, newest first. When the
// day has no totals row yet a zeroed one is synthesized in memory; rows are
// only ever created on the write path.
func (s *LedgerService) LoadDay(userID uint, date time.Time) (*models.DailyTotal, []models.FoodEntry, error) {
	day := dayStartLocal(date)

	var entries []models.FoodEntry
	if err := s.db.
		Where("user_id = ? AND date = ?", userID, day).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, nil, fmt.Errorf("load entries: %w", err)
	}

	var total models.DailyTotal
	err := s.db.Where("user_id = ? AND date = ?", userID, day).First(&total).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		total = models.DailyTotal{UserID: userID, Date: day}
	} else if err != nil {
		return nil, nil, fmt.Errorf("load day totals: %w", err)
	}

	return &total, entries, nil
}

// History lists every persisted day of totals for the user, newest date
// first.
func (s *LedgerService) History(userID uint) ([]models.DailyTotal, error) {
	var totals []models.DailyTotal
	err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&totals).Error
	return totals, err
}

// RetryTotalsUpdate re-applies an already-stored entry's values to its day's
// totals. Meant for recovery after a TotalsUpdateError from RecordEntry, when
// the entry row is durable but its contribution never landed.
func (s *LedgerService) RetryTotalsUpdate(userID, entryID uint) error {
	var entry models.FoodEntry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return fmt.Errorf("load entry: %w", err)
	}
	if err := s.applyDelta(entry.DailyTotalID, entry.Calories, entry.Protein, entry.Carbs, entry.Fat); err != nil {
		return &TotalsUpdateError{EntryID: entry.ID, Err: err}
	}
	s.broadcastTotals(userID, entry.Date)
	return nil
}

// findOrCreateDayTotal is idempotent: two near-simultaneous first entries of
// the day can both attempt creation, and the loser of the unique-index race
// re-reads the winner's row instead of failing.
func (s *LedgerService) findOrCreateDayTotal(userID uint, day time.Time) (*models.DailyTotal, error) {
	total := models.DailyTotal{UserID: userID, Date: day}
	err := s.db.Where("user_id = ? AND date = ?", userID, day).FirstOrCreate(&total).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = s.db.Where("user_id = ? AND date = ?", userID, day).First(&total).Error
	}
	if err != nil {
		return nil, err
	}
	return &total, nil
}

// applyDelta folds one entry's contribution into the totals row as a single
// relative increment, so concurrent writers never overwrite each other.
func (s *LedgerService) applyDelta(totalID uint, calories, protein, carbs, fat float64) error {
	return s.db.Model(&models.DailyTotal{}).
		Where("id = ?", totalID).
		UpdateColumns(map[string]interface{}{
			"calories": gorm.Expr("calories + ?", calories),
			"protein":  gorm.Expr("protein + ?", protein),
			"carbs":    gorm.Expr("carbs + ?", carbs),
			"fat":      gorm.Expr("fat + ?", fat),
		}).Error
}

func (s *LedgerService) broadcastTotals(userID uint, day time.Time) {
	if s.hub == nil {
		return
	}
	var total models.DailyTotal
	if err := s.db.Where("user_id = ? AND date = ?", userID, day).First(&total).Error; err != nil {
		return
	}
	s.hub.BroadcastDayTotals(userID, &total)
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
