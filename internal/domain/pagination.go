package domain

// PaginatedResult carries a page of items together with the total count the
// page was cut from.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	From  int   `json:"from"`
	Size  int   `json:"size"`
}

// NewPaginatedResult creates a PaginatedResult.
func NewPaginatedResult[T any](items []T, total int64, from, size int) *PaginatedResult[T] {
	return &PaginatedResult[T]{Items: items, Total: total, From: from, Size: size}
}
