package model

type PriceRange struct {
	Min float64 `firestore:"min" json:"min"`
	Max float64 `firestore:"max" json:"max"`
}

// IsZero reports an unset range. An unset range matches no price.
func (r PriceRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

type Preferences struct {
	Categories                []string   `firestore:"categories" json:"categories"`
	SustainabilityPreferences []string   `firestore:"sustainabilityPreferences" json:"sustainabilityPreferences"`
	PriceRange                PriceRange `firestore:"priceRange" json:"priceRange"`
}

// User mirrors the users/{id} document. Favorites live in the same document
// but are owned by the favorites store, so they are not mapped here.
type User struct {
	Id          string      `firestore:"id" json:"id"`
	Email       string      `firestore:"email" json:"email"`
	Username    string      `firestore:"username" json:"username"`
	IsPremium   bool        `firestore:"isPremium" json:"isPremium"`
	Preferences Preferences `firestore:"preferences" json:"preferences"`
}
