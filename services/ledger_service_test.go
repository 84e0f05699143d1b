package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Shwetank-F/daily-diet-scan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodEntry{},
		&models.DailyTotal{},
		&models.CatalogItem{},
		&models.DailyGoal{},
	))
	return db
}

func newTestLedger(t *testing.T) (*LedgerService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewLedgerService(db, NewCatalogService(db), nil), db
}

func ptr(v float64) *float64 { return &v }

var testDay = time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)

func TestRecordEntryScalesByQuantity(t *testing.T) {
	ledger, _ := newTestLedger(t)

	entry, err := ledger.RecordEntry(1, testDay, "Granola", "Acme", 2, NutritionRecord{
		Calories: ptr(100),
		Protein:  ptr(3),
		Sodium:   ptr(80),
	})
	require.NoError(t, err)

	assert.Equal(t, 200.0, entry.Calories)
	assert.Equal(t, 6.0, entry.Protein)
	assert.Equal(t, 0.0, entry.Carbs) // absent macro defaults to 0 for arithmetic
	assert.Equal(t, 0.0, entry.Fat)
	require.NotNil(t, entry.Sodium)
	assert.Equal(t, 160.0, *entry.Sodium)
	assert.Nil(t, entry.Fiber) // absent optional stays absent

	total, _, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	assert.Equal(t, 200.0, total.Calories)
	assert.Equal(t, 6.0, total.Protein)
}

func TestRecordEntryValidation(t *testing.T) {
	ledger, db := newTestLedger(t)

	var verr *ValidationError

	_, err := ledger.RecordEntry(1, testDay, "   ", "", 1, NutritionRecord{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = ledger.RecordEntry(1, testDay, "Granola", "", 0, NutritionRecord{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)

	// nothing persisted on rejection
	var entryCount, totalCount int64
	db.Model(&models.FoodEntry{}).Count(&entryCount)
	db.Model(&models.DailyTotal{}).Count(&totalCount)
	assert.Zero(t, entryCount)
	assert.Zero(t, totalCount)
}

func TestFindOrCreateIsIdempotent(t *testing.T) {
	ledger, db := newTestLedger(t)

	_, err := ledger.RecordEntry(1, testDay, "Oatmeal", "", 1, NutritionRecord{Calories: ptr(150)})
	require.NoError(t, err)
	_, err = ledger.RecordEntry(1, testDay, "Banana", "", 1, NutritionRecord{Calories: ptr(105)})
	require.NoError(t, err)

	var count int64
	db.Model(&models.DailyTotal{}).Where("user_id = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)

	total, entries, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	assert.Equal(t, 255.0, total.Calories)
	assert.Len(t, entries, 2)
}

func TestDeleteEntryIsIdempotent(t *testing.T) {
	ledger, _ := newTestLedger(t)

	entry, err := ledger.RecordEntry(1, testDay, "Yogurt", "", 1, NutritionRecord{
		Calories: ptr(90), Protein: ptr(5), Carbs: ptr(12), Fat: ptr(2),
	})
	require.NoError(t, err)

	require.NoError(t, ledger.DeleteEntry(1, entry.ID))
	// second delete is a no-op, never an error
	require.NoError(t, ledger.DeleteEntry(1, entry.ID))
	// unknown id is also a no-op
	require.NoError(t, ledger.DeleteEntry(1, 9999))

	total, entries, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0.0, total.Calories)
	assert.Equal(t, 0.0, total.Protein)
	assert.Equal(t, 0.0, total.Carbs)
	assert.Equal(t, 0.0, total.Fat)
}

func TestLedgerConservation(t *testing.T) {
	ledger, _ := newTestLedger(t)

	var ids []uint
	for i := 1; i <= 5; i++ {
		entry, err := ledger.RecordEntry(1, testDay, fmt.Sprintf("Food %d", i), "", 1, NutritionRecord{
			Calories: ptr(float64(i * 100)),
			Protein:  ptr(float64(i)),
			Carbs:    ptr(float64(i * 2)),
			Fat:      ptr(float64(i) / 2),
		})
		require.NoError(t, err)
		ids = append(ids, entry.ID)
	}

	// delete a strict subset
	require.NoError(t, ledger.DeleteEntry(1, ids[1]))
	require.NoError(t, ledger.DeleteEntry(1, ids[3]))

	total, entries, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var cal, prot, carbs, fat float64
	for _, e := range entries {
		cal += e.Calories
		prot += e.Protein
		carbs += e.Carbs
		fat += e.Fat
	}
	assert.Equal(t, cal, total.Calories)
	assert.Equal(t, prot, total.Protein)
	assert.Equal(t, carbs, total.Carbs)
	assert.Equal(t, fat, total.Fat)
}

func TestDeleteFloorsTotalsAtZero(t *testing.T) {
	ledger, db := newTestLedger(t)

	entry, err := ledger.RecordEntry(1, testDay, "Granola", "", 1, NutritionRecord{Calories: ptr(300)})
	require.NoError(t, err)

	// simulate lost-update drift: the totals row lags behind the entry
	require.NoError(t, db.Model(&models.DailyTotal{}).
		Where("user_id = ?", 1).
		Update("calories", 100.0).Error)

	require.NoError(t, ledger.DeleteEntry(1, entry.ID))

	total, _, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total.Calories) // floored, never negative
}

func TestDeleteUsesStoredValuesNotPerServing(t *testing.T) {
	ledger, _ := newTestLedger(t)

	entry, err := ledger.RecordEntry(1, testDay, "Shake", "", 3, NutritionRecord{Calories: ptr(120)})
	require.NoError(t, err)
	_, err = ledger.RecordEntry(1, testDay, "Toast", "", 1, NutritionRecord{Calories: ptr(80)})
	require.NoError(t, err)

	require.NoError(t, ledger.DeleteEntry(1, entry.ID))

	total, _, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	// 360 + 80 - 360: the scaled value stored on the entry is reversed
	assert.Equal(t, 80.0, total.Calories)
}

func TestLoadDayWithoutRowSynthesizesZeroTotals(t *testing.T) {
	ledger, db := newTestLedger(t)

	total, entries, err := ledger.LoadDay(7, testDay)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0.0, total.Calories)
	assert.Zero(t, total.ID)

	// the read path never persists the synthesized row
	var count int64
	db.Model(&models.DailyTotal{}).Count(&count)
	assert.Zero(t, count)
}

func TestLoadDayOrdersNewestFirst(t *testing.T) {
	ledger, _ := newTestLedger(t)

	first, err := ledger.RecordEntry(1, testDay, "Breakfast", "", 1, NutritionRecord{Calories: ptr(100)})
	require.NoError(t, err)
	second, err := ledger.RecordEntry(1, testDay, "Lunch", "", 1, NutritionRecord{Calories: ptr(200)})
	require.NoError(t, err)

	_, entries, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestDaysAreIsolatedPerUserAndDate(t *testing.T) {
	ledger, _ := newTestLedger(t)
	nextDay := testDay.AddDate(0, 0, 1)

	_, err := ledger.RecordEntry(1, testDay, "Oats", "", 1, NutritionRecord{Calories: ptr(150)})
	require.NoError(t, err)
	_, err = ledger.RecordEntry(1, nextDay, "Oats", "", 1, NutritionRecord{Calories: ptr(150)})
	require.NoError(t, err)
	_, err = ledger.RecordEntry(2, testDay, "Oats", "", 2, NutritionRecord{Calories: ptr(150)})
	require.NoError(t, err)

	total1, _, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	total2, _, err := ledger.LoadDay(2, testDay)
	require.NoError(t, err)

	assert.Equal(t, 150.0, total1.Calories)
	assert.Equal(t, 300.0, total2.Calories)

	history, err := ledger.History(1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Date.After(history[1].Date), "history is newest first")
}

func TestRetryTotalsUpdateReappliesEntry(t *testing.T) {
	ledger, db := newTestLedger(t)

	entry, err := ledger.RecordEntry(1, testDay, "Bar", "", 1, NutritionRecord{Calories: ptr(250), Protein: ptr(10)})
	require.NoError(t, err)

	// simulate the totals update having been lost after the entry landed
	require.NoError(t, db.Model(&models.DailyTotal{}).
		Where("id = ?", entry.DailyTotalID).
		Updates(map[string]interface{}{"calories": 0.0, "protein": 0.0}).Error)

	require.NoError(t, ledger.RetryTotalsUpdate(1, entry.ID))

	total, _, err := ledger.LoadDay(1, testDay)
	require.NoError(t, err)
	assert.Equal(t, 250.0, total.Calories)
	assert.Equal(t, 10.0, total.Protein)
}

func TestRecordEntryUpsertsCatalogMemo(t *testing.T) {
	ledger, db := newTestLedger(t)

	_, err := ledger.RecordEntry(1, testDay, "Granola", "Acme", 2, NutritionRecord{Calories: ptr(100)})
	require.NoError(t, err)

	var item models.CatalogItem
	require.NoError(t, db.Where("user_id = ? AND name = ? AND brand = ?", 1, "Granola", "Acme").First(&item).Error)
	// memo stores per-serving values, not the scaled ones
	assert.Equal(t, 100.0, item.Calories)
}
