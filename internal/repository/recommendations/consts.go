package recommendations

const (
	// collection name
	recommendationsNode string = "recommendations"
	productsNode        string = "products"

	// Fields' name and path
	UserIdFieldPath          string = "userId"
	PreferencesHashFieldPath string = "preferencesHash"
	RankFieldPath            string = "rank"
	CreatedAtFieldPath       string = "createdAt"
	UpdatedAtFieldPath       string = "updatedAt"
)
