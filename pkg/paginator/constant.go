package paginator

const (
	// DefaultLimit is the number of items returned when no valid limit is provided.
	DefaultLimit = 50
	// MaxLimit is the maximum number of items per request to prevent excessive queries.
	MaxLimit = 100
)
