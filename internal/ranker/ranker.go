// Package ranker orders products for the "recommended for you" placement.
package ranker

import (
	"sort"

	"go-ecocidade/internal/model"
)

const (
	// DefaultSustainabilityScore is used for products the vendor did not rate.
	DefaultSustainabilityScore = 0.0

	categoryBonus = 2.0
	priceBonus    = 2.0
	tagBonus      = 1.0
)

type Scored struct {
	Product model.Product
	Score   float64
}

// Score is the base sustainability score plus the preference bonuses. It has no side effects.
// A zero price range {0,0} counts as unset and grants no price bonus, even to free products.
func Score(p model.Product, prefs model.Preferences) float64 {
	score := DefaultSustainabilityScore
	if p.SustainabilityScore != nil {
		score = *p.SustainabilityScore
	}

	if contains(prefs.Categories, p.Category) {
		score += categoryBonus
	}

	if !prefs.PriceRange.IsZero() && prefs.PriceRange.Contains(p.Price) {
		score += priceBonus
	}

	for _, tag := range prefs.SustainabilityPreferences {
		if contains(p.Certifications, tag) {
			score += tagBonus
		}
	}

	return score
}

// RankScored scores every product and sorts by descending score. Equal scores keep catalog order.
func RankScored(products []model.Product, prefs model.Preferences) []Scored {
	scored := make([]Scored, len(products))
	for i, p := range products {
		scored[i] = Scored{Product: p, Score: Score(p, prefs)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

func Rank(products []model.Product, prefs model.Preferences) []model.Product {
	scored := RankScored(products, prefs)
	ranked := make([]model.Product, len(scored))
	for i, s := range scored {
		ranked[i] = s.Product
	}
	return ranked
}

// Top returns at most n entries of an already ranked list.
func Top(scored []Scored, n int) []Scored {
	if n < 0 || n >= len(scored) {
		return scored
	}
	return scored[:n]
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
