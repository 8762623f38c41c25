package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Pagination carries paging params for list queries.
type Pagination struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// NewPagination validates caller-supplied paging. Absent values fall back to
// page 0 and DefaultPageSize; a supplied non-positive size or negative index is
// rejected; sizes above MaxPageSize are clamped. An index whose offset would
// not fit in an int is rejected.
func NewPagination(pageIndex, pageSize *int) (Pagination, error) {
	p := Pagination{PageIndex: 0, PageSize: DefaultPageSize}
	if pageIndex != nil {
		if *pageIndex < 0 {
			return Pagination{}, Invalid("pagination", "pageIndex must not be negative")
		}
		p.PageIndex = *pageIndex
	}
	if pageSize != nil {
		if *pageSize <= 0 {
			return Pagination{}, Invalid("pagination", "pageSize must be positive")
		}
		p.PageSize = min(*pageSize, MaxPageSize)
	}
	if p.PageIndex > math.MaxInt/p.PageSize {
		return Pagination{}, Invalid("pagination", "pageIndex out of range")
	}
	return p, nil
}

func (p Pagination) Offset() int { return p.PageIndex * p.PageSize }

func (p Pagination) Limit() int { return p.PageSize }

// Page is one slice of a listing plus the total row count.
type Page[T any] struct {
	List      []T `json:"list"`
	Total     int `json:"total"`
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

func NewPage[T any](items []T, total int, p Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{List: items, Total: total, PageIndex: p.PageIndex, PageSize: p.PageSize}
}
