package utils

import (
	"testing"

	"flyerpoints-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFlyer(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.FlyerCategory
	}{
		{"English supermarket", "Grand opening SUPERMARKET weekend sale", domain.CategorySupermarket},
		{"Market substring", "Visit our farmers market today", domain.CategorySupermarket},
		{"Japanese bargain sale", "本日限定の特売セール", domain.CategorySupermarket},
		{"Japanese supermarket", "新しいスーパーがオープン", domain.CategorySupermarket},
		{"English real estate", "Real estate open house this Sunday", domain.CategoryRealEstate},
		{"Mansion listing", "Luxury mansion for sale", domain.CategoryRealEstate},
		{"Japanese real estate", "駅近の不動産物件", domain.CategoryRealEstate},
		{"Japanese housing", "新築住宅の見学会", domain.CategoryRealEstate},
		{"English restaurant", "New restaurant opening downtown", domain.CategoryRestaurant},
		{"Cafe flyer", "Cozy cafe with fresh pastries", domain.CategoryRestaurant},
		{"Lunch special", "Lunch special 500 yen", domain.CategoryRestaurant},
		{"Japanese lunch", "お得なランチメニュー", domain.CategoryRestaurant},
		{"Japanese dining", "飲食店グランドオープン", domain.CategoryRestaurant},
		{"No keywords", "Piano lessons for beginners", domain.CategoryOther},
		{"Empty text", "", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyFlyer(tt.text))
		})
	}
}

func TestClassifyFlyer_CaseInsensitive(t *testing.T) {
	assert.Equal(t, domain.CategorySupermarket, ClassifyFlyer("MARKET"))
	assert.Equal(t, domain.CategoryRestaurant, ClassifyFlyer("LUNCH TIME"))
}

func TestClassifyFlyer_PriorityOrder(t *testing.T) {
	t.Run("Supermarket beats restaurant", func(t *testing.T) {
		text := "market cafe lunch"
		assert.Equal(t, domain.CategorySupermarket, ClassifyFlyer(text))
	})

	t.Run("Supermarket beats real estate", func(t *testing.T) {
		text := "特売 不動産"
		assert.Equal(t, domain.CategorySupermarket, ClassifyFlyer(text))
	})

	t.Run("Real estate beats restaurant", func(t *testing.T) {
		text := "不動産 ランチ"
		assert.Equal(t, domain.CategoryRealEstate, ClassifyFlyer(text))
	})
}
