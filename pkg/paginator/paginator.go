package paginator

// Adjust normalizes the parameters: negative skip becomes 0, limit falls back to
// defaultLimit (or DefaultLimit when that is not positive) and is capped at MaxLimit.
func (q *OffsetQuery) Adjust(defaultLimit int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// Build returns the metadata for a page that returned count items.
// A full page means there may be more items after it.
func (q OffsetQuery) Build(count int) Paginator {
	return Paginator{
		Skip:  q.Skip,
		Limit: q.Limit,
		Count: count,
		More:  q.Limit > 0 && count >= q.Limit,
	}
}
