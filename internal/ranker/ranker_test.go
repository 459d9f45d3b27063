package ranker

import (
	"sort"
	"testing"

	"go-ecocidade/internal/model"
	"go-ecocidade/internal/utils"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestRankScenario(t *testing.T) {
	prefs := model.Preferences{
		Categories:                []string{"energy"},
		PriceRange:                model.PriceRange{Min: 0, Max: 100},
		SustainabilityPreferences: []string{"LED"},
	}
	a := model.Product{Id: "A", Category: "energy", Price: 50, Certifications: []string{"LED"}, SustainabilityScore: utils.Float64ToPointer(5)}
	b := model.Product{Id: "B", Category: "food", Price: 200, SustainabilityScore: utils.Float64ToPointer(9)}

	scored := RankScored([]model.Product{b, a}, prefs)

	assert.Equal(t, "A", scored[0].Product.Id)
	assert.Equal(t, 10.0, scored[0].Score)
	assert.Equal(t, "B", scored[1].Product.Id)
	assert.Equal(t, 9.0, scored[1].Score)
}

func TestScoreMissingSustainabilityDefaultsToZero(t *testing.T) {
	p := model.Product{Id: "x", Price: 10}

	assert.Equal(t, 0.0, Score(p, model.Preferences{}))
	assert.Len(t, Rank([]model.Product{p}, model.Preferences{}), 1)
}

func TestScoreCountsEveryMatchingTag(t *testing.T) {
	p := model.Product{Certifications: []string{"FSC", "Ecolabel", "GOTS"}}
	prefs := model.Preferences{SustainabilityPreferences: []string{"FSC", "GOTS", "FairTrade"}}

	assert.Equal(t, 2.0, Score(p, prefs))
}

func TestScorePriceRangeInclusive(t *testing.T) {
	prefs := model.Preferences{PriceRange: model.PriceRange{Min: 10, Max: 20}}

	assert.Equal(t, 2.0, Score(model.Product{Price: 10}, prefs))
	assert.Equal(t, 2.0, Score(model.Product{Price: 20}, prefs))
	assert.Equal(t, 0.0, Score(model.Product{Price: 20.5}, prefs))
}

func TestScoreZeroPriceRangeIsUnset(t *testing.T) {
	free := model.Product{Price: 0, Certifications: []string{"LED"}, SustainabilityScore: utils.Float64ToPointer(0)}
	prefs := model.Preferences{SustainabilityPreferences: []string{"LED"}}

	assert.Equal(t, 1.0, Score(free, prefs))

	prefs.PriceRange = model.PriceRange{Min: 0, Max: 1}
	assert.Equal(t, 3.0, Score(free, prefs))
}

func TestTop(t *testing.T) {
	scored := []Scored{{Score: 3}, {Score: 2}, {Score: 1}}

	assert.Len(t, Top(scored, 2), 2)
	assert.Len(t, Top(scored, 10), 3)
	assert.Len(t, Top(scored, -1), 3)
}

func genProducts() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 10)).Map(func(scores []int) []model.Product {
		products := make([]model.Product, len(scores))
		for i, s := range scores {
			products[i] = model.Product{
				Id:                  string(rune('a' + i%26)),
				Price:               float64(i * 10),
				Category:            "c",
				SustainabilityScore: utils.Float64ToPointer(float64(s)),
			}
		}
		return products
	})
}

func TestRankProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("empty preferences sort by sustainability score, stable", prop.ForAll(
		func(products []model.Product) bool {
			type indexed struct {
				idx   int
				score float64
			}
			expected := make([]indexed, len(products))
			for i, p := range products {
				expected[i] = indexed{i, *p.SustainabilityScore}
			}
			sort.SliceStable(expected, func(i, j int) bool { return expected[i].score > expected[j].score })

			ranked := Rank(products, model.Preferences{})
			if len(ranked) != len(products) {
				return false
			}
			for i := range ranked {
				want := products[expected[i].idx]
				if ranked[i].Id != want.Id || ranked[i].Price != want.Price {
					return false
				}
			}
			return true
		},
		genProducts(),
	))

	properties.Property("a matching tag never lowers the score", prop.ForAll(
		func(base int, certs []string, tag string) bool {
			p := model.Product{SustainabilityScore: utils.Float64ToPointer(float64(base)), Certifications: append(certs, tag)}
			without := model.Preferences{}
			with := model.Preferences{SustainabilityPreferences: []string{tag}}
			return Score(p, with) > Score(p, without)
		},
		gen.IntRange(0, 10),
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
	))

	properties.Property("matching product scores at least as high as an identical one lacking the match", prop.ForAll(
		func(base int, tag string) bool {
			prefs := model.Preferences{SustainabilityPreferences: []string{tag}}
			matching := model.Product{SustainabilityScore: utils.Float64ToPointer(float64(base)), Certifications: []string{tag}}
			lacking := model.Product{SustainabilityScore: utils.Float64ToPointer(float64(base))}
			return Score(matching, prefs) >= Score(lacking, prefs)
		},
		gen.IntRange(0, 10),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
