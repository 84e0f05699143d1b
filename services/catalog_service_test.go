package services

import (
	"testing"

	"github.com/Shwetank-F/daily-diet-scan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberUpsertsByUserNameBrand(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	require.NoError(t, svc.Remember(1, "Granola", "Acme", NutritionRecord{Calories: ptr(100), Protein: ptr(3)}))
	// same key, fresher values
	require.NoError(t, svc.Remember(1, "Granola", "Acme", NutritionRecord{Calories: ptr(110), Protein: ptr(4)}))
	// different brand is a different memo
	require.NoError(t, svc.Remember(1, "Granola", "Generic", NutritionRecord{Calories: ptr(90)}))

	var count int64
	db.Model(&models.CatalogItem{}).Count(&count)
	assert.Equal(t, int64(2), count)

	var item models.CatalogItem
	require.NoError(t, db.Where("user_id = ? AND name = ? AND brand = ?", 1, "Granola", "Acme").First(&item).Error)
	assert.Equal(t, 110.0, item.Calories)
	assert.Equal(t, 4.0, item.Protein)
}

func TestSearchIsScopedToUserAndPrefix(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	require.NoError(t, svc.Remember(1, "Oatmeal", "", NutritionRecord{Calories: ptr(150)}))
	require.NoError(t, svc.Remember(1, "Oat Milk", "", NutritionRecord{Calories: ptr(60)}))
	require.NoError(t, svc.Remember(1, "Banana", "", NutritionRecord{Calories: ptr(105)}))
	require.NoError(t, svc.Remember(2, "Oat Bar", "", NutritionRecord{Calories: ptr(200)}))

	items, err := svc.Search(1, "Oat")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, uint(1), it.UserID)
	}

	all, err := svc.Search(1, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
