package product

const (
	// collection name
	productNode string = "products"

	// Fields' name and path
	IdFieldPath             string = "id"
	NameFieldPath           string = "name"
	CategoryFieldPath       string = "category"
	PriceFieldPath          string = "price"
	AffiliateLinkFieldPath  string = "affiliateLink"
	SustainabilityFieldPath string = "sustainabilityScore"
	CreatedAtFieldPath      string = "createdAt"
)
