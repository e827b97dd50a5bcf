package types

const (
	FilterDefaultLimit = 50
	FilterMaxLimit     = 1000
)

// Filter holds common pagination parameters for list queries
type Filter struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// GetLimit returns a sane limit for list queries. Safe to call on a nil
// filter.
func (f *Filter) GetLimit() int {
	if f == nil || f.Limit <= 0 {
		return FilterDefaultLimit
	}
	if f.Limit > FilterMaxLimit {
		return FilterMaxLimit
	}
	return f.Limit
}

// GetOffset returns a non-negative offset for list queries. Safe to call on
// a nil filter.
func (f *Filter) GetOffset() int {
	if f == nil || f.Offset < 0 {
		return 0
	}
	return f.Offset
}
