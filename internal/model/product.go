package model

import "time"

// NoPurchaseLink marks a product that has no external purchase page.
const NoPurchaseLink = "none"

type Product struct {
	Id                  string    `firestore:"id" json:"id"`
	Name                string    `firestore:"name" json:"name"`
	Description         string    `firestore:"description" json:"description"`
	Price               float64   `firestore:"price" json:"price"`
	Category            string    `firestore:"category" json:"category"`
	ImageUrl            string    `firestore:"imageUrl" json:"imageUrl"`
	Certifications      []string  `firestore:"certifications" json:"certifications"`
	AffiliateLink       string    `firestore:"affiliateLink" json:"affiliateLink"`
	Platform            string    `firestore:"platform" json:"platform"`
	SustainabilityScore *float64  `firestore:"sustainabilityScore,omitempty" json:"sustainabilityScore,omitempty"`
	CreatedAt           time.Time `firestore:"createdAt,omitempty" json:"-"`
}

// Key is the identity used for favorites and duplicate detection.
// Ids are regenerated on every catalog fetch, the purchase link is not.
func (p Product) Key() string {
	return p.AffiliateLink
}

// Snapshot returns a deep copy that shares no memory with p.
func (p Product) Snapshot() Product {
	s := p
	if p.Certifications != nil {
		s.Certifications = append([]string(nil), p.Certifications...)
	}
	if p.SustainabilityScore != nil {
		score := *p.SustainabilityScore
		s.SustainabilityScore = &score
	}
	return s
}

func (p Product) HasPurchaseLink() bool {
	return p.AffiliateLink != "" && p.AffiliateLink != NoPurchaseLink && p.AffiliateLink != "#"
}
