package domain

import "math"

// MaxPage caps the page number a caller may request.
const MaxPage = 1_000_000

type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset saturates at math.MaxInt instead of wrapping negative.
func (p Pagination) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}

	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}

	return (p.Page - 1) * p.PageSize
}
