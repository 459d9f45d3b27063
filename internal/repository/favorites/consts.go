package favorites

const (
	// favorites are an array field of the user doc
	userNode string = "users"

	FavoritesFieldPath string = "favorites"
)
