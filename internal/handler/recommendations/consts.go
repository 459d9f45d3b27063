package recommendations

import "time"

const (
	// concurrent users being ranked
	maxInFlight int = 4

	// rankings older than this are recomputed even if the preferences did not change,
	// since the catalog may have changed meanwhile
	maxAge time.Duration = time.Hour * 24

	DefaultLimit int = 12
)
