package paginator

// OffsetQuery contains skip/limit pagination parameters for a request.
type OffsetQuery struct {
	Skip  int `json:"skip" form:"skip"`
	Limit int `json:"limit" form:"limit"`
}

// Paginator contains pagination metadata for a query result.
type Paginator struct {
	Skip  int  `json:"skip"`
	Limit int  `json:"limit"`
	Count int  `json:"count"`
	More  bool `json:"has_more"`
}
