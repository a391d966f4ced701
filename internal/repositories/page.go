package repositories

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPageNum keeps Offset within an int32 for every page size.
	MaxPageNum = math.MaxInt32 / MaxPageSize
)

// Page is a 1-based skip/limit window.
type Page struct {
	Num  int
	Size int
}

// NewPage normalizes user supplied paging values.
func NewPage(num, size int) Page {
	if num < 1 {
		num = 1
	}
	if num > MaxPageNum {
		num = MaxPageNum
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Num: num, Size: size}
}

// Offset is the number of records to skip.
func (p Page) Offset() int {
	return (p.Num - 1) * p.Size
}

// Limit is the maximum number of records to return.
func (p Page) Limit() int {
	return p.Size
}
