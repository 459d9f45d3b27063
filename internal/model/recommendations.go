package model

import "time"

type Recommendations struct {
	UserId          string               `firestore:"userId"`
	PreferencesHash string               `firestore:"preferencesHash"`
	Products        []RecommendedProduct `firestore:"-"` // it is not a field but a collection
	CreatedAt       time.Time            `firestore:"createdAt,omitempty"`
	UpdatedAt       time.Time            `firestore:"updatedAt,omitempty"`
}

type RecommendedProduct struct {
	Product
	Rank  int     `firestore:"rank"`
	Score float64 `firestore:"score"`
}
