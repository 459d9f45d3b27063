package catalog

import "time"

const (
	CATALOG_INSTRUCTION string = `You identify and compare sustainable, eco-friendly products sold online.
	Only use reliable sources and recognised ecological certifications (e.g. Ecolabel, Fair Trade, GOTS, FSC).
	Evaluate environmental impact (life cycle, carbon footprint, biodegradability), durability and materials.
	Focus on products available at: %s.
	Return only products with a direct purchase link and a real price in euros.
	Generate a JSON formated response, containing a list of items under the 'products' key. Each item must have
	the keys 'name', 'description', 'price', 'category', 'imageUrl', 'certifications', 'affiliateLink', 'platform'
	and 'sustainabilityScore' (a number between 0 and 10).
	Example:
	{
		"products": [
			{
				"name": "name",
				"description": "description",
				"price": 49.9,
				"category": "energy",
				"imageUrl": "https://...",
				"certifications": ["Ecolabel"],
				"affiliateLink": "https://...",
				"platform": "platform",
				"sustainabilityScore": 8.5
			}
		]
	}`

	CATALOG_PROMPT_ALL      string = `List the most sustainable and best reviewed products available right now.`
	CATALOG_PROMPT_CATEGORY string = `Compare sustainable products in the category <category>%s</category> considering environmental impact, value for money, ecological certifications, durability and materials.`

	retryAttempts int           = 3
	retryDelay    time.Duration = time.Second
	retryTimeout  time.Duration = time.Second * 30

	breakerFailureThreshold uint32        = 5
	breakerOpenTimeout      time.Duration = time.Minute
)

var PartnerSites = []string{
	"Decathlon Portugal",
	"Trotinetes Portugal",
	"BeElectric",
	"Automóveis Elétricos",
	"OOYOO",
	"Pegada Verde",
	"Mind in Trash",
}
