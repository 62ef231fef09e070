// Package category maps free-form category labels onto the fixed category set
// and assigns display colors and icons to them.
package category

import (
	"strings"

	"github.com/Veraticus/jarvis/internal/model"
)

type keywordRule struct {
	category model.Category
	keywords []string
}

// Ordered; the first rule with a matching keyword wins.
var normalizeRules = []keywordRule{
	{model.CategoryFood, []string{"food", "grocer", "restaurant", "dining", "coffee", "cafe", "café", "bakery", "takeout", "meal", "lunch", "dinner", "breakfast", "supermarket"}},
	{model.CategoryTravel, []string{"travel", "flight", "airline", "airfare", "hotel", "lodging", "vacation", "airbnb", "aviation"}},
	{model.CategoryTransportation, []string{"transport", "fuel", "gasoline", "gas station", "uber", "lyft", "taxi", "parking", "transit", "toll", "auto ", "automotive", "car rental", "rideshare"}},
	{model.CategoryEntertainment, []string{"entertain", "movie", "cinema", "music", "game", "streaming", "netflix", "spotify", "concert", "hobby", "recreation"}},
	{model.CategoryShopping, []string{"shop", "amazon", "clothing", "apparel", "electronics", "retail", "merchandise", "department store"}},
	{model.CategoryBills, []string{"bill", "utilit", "rent", "mortgage", "insurance", "phone", "internet", "electric", "water", "subscription", "housing"}},
	{model.CategoryHealthcare, []string{"health", "medical", "doctor", "pharmacy", "dental", "hospital", "fitness", "gym", "clinic"}},
	{model.CategoryEducation, []string{"educat", "tuition", "school", "course", "book", "university", "training"}},
}

// Normalize maps a raw label onto the category enum. Exact enum names map to
// themselves, then keyword rules apply in order, and anything else is other.
func Normalize(raw string) model.Category {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return model.CategoryOther
	}
	if c, ok := model.ParseCategory(name); ok {
		return c
	}
	for _, rule := range normalizeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryOther
}
