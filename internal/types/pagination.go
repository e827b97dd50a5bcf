package types

// PaginationResponse reports the window of a list response and the total
// number of matching rows.
type PaginationResponse struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResponse is a generic paginated list payload
type ListResponse[T any] struct {
	Items      []T                `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewPaginationResponse creates a new pagination response
func NewPaginationResponse(total, limit, offset int) PaginationResponse {
	return PaginationResponse{
		Total:  total,
		Limit:  limit,
		Offset: offset + limit,
	}
}

// NewListResponse creates a new list response with pagination
func NewListResponse[T any](items []T, total, limit, offset int) ListResponse[T] {
	return ListResponse[T]{
		Items:      items,
		Pagination: NewPaginationResponse(total, limit, offset),
	}
}
