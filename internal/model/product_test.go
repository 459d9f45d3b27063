package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotIsDetached(t *testing.T) {
	score := 7.0
	p := Product{Id: "a", Certifications: []string{"FSC"}, SustainabilityScore: &score}

	s := p.Snapshot()
	p.Certifications[0] = "changed"
	*p.SustainabilityScore = 1

	assert.Equal(t, []string{"FSC"}, s.Certifications)
	assert.Equal(t, 7.0, *s.SustainabilityScore)
}

func TestHasPurchaseLink(t *testing.T) {
	assert.True(t, Product{AffiliateLink: "https://shop.pt/x"}.HasPurchaseLink())
	assert.False(t, Product{AffiliateLink: NoPurchaseLink}.HasPurchaseLink())
	assert.False(t, Product{AffiliateLink: "#"}.HasPurchaseLink())
	assert.False(t, Product{}.HasPurchaseLink())
}

func TestPriceRangeInclusive(t *testing.T) {
	r := PriceRange{Min: 0, Max: 100}
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(100))
	assert.False(t, r.Contains(100.01))
}
