package utils

import (
	"strings"

	"flyerpoints-backend/internal/domain"
)

// Keyword lists are bilingual (English + Japanese) and curated from the
// flyers the service actually receives. Matching is case-insensitive
// substring containment.
var (
	supermarketTerms = []string{"supermarket", "market", "スーパー", "特売"}
	realEstateTerms  = []string{"real estate", "mansion", "不動産", "住宅"}
	restaurantTerms  = []string{"restaurant", "cafe", "lunch", "飲食", "ランチ"}
)

// ClassifyFlyer maps extracted flyer text to a category. It is pure and
// deterministic: categories are evaluated in fixed priority order
// (Supermarket, Real Estate, Restaurant) and the first match wins; text
// matching nothing is Other.
func ClassifyFlyer(text string) domain.FlyerCategory {
	t := strings.ToLower(text)

	if containsAny(t, supermarketTerms) {
		return domain.CategorySupermarket
	}
	if containsAny(t, realEstateTerms) {
		return domain.CategoryRealEstate
	}
	if containsAny(t, restaurantTerms) {
		return domain.CategoryRestaurant
	}
	return domain.CategoryOther
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
