package core

import (
	"fmt"
	"math"
)

const (
	DefaultPageSize   = 2
	DefaultPageNumber = 0
)

// SearchFilter holds the optional criteria of a reservation search. Nil means "not set".
type SearchFilter struct {
	RoomID     *int64
	UserID     *int64
	PageSize   *int
	PageNumber *int
}

// PageRequest is a resolved, zero-based page.
type PageRequest struct {
	Size   int
	Number int
}

// PageRequest resolves the defaults for unset paging values and rejects impossible pages.
func (f SearchFilter) PageRequest() (PageRequest, error) {
	page := PageRequest{Size: DefaultPageSize, Number: DefaultPageNumber}

	if f.PageSize != nil {
		page.Size = *f.PageSize
	}

	if f.PageNumber != nil {
		page.Number = *f.PageNumber
	}

	if page.Size < 1 {
		return PageRequest{}, fmt.Errorf("%w: pageSize must be at least 1, got %d", ErrInvalidArgument, page.Size)
	}

	if page.Number < 0 {
		return PageRequest{}, fmt.Errorf("%w: pageNumber must not be negative, got %d", ErrInvalidArgument, page.Number)
	}

	return page, nil
}

// Offset is the number of items on the pages before this one, saturated at math.MaxInt.
func (p PageRequest) Offset() int {
	if p.Number > 0 && p.Size > math.MaxInt/p.Number {
		return math.MaxInt
	}

	return p.Size * p.Number
}

// Slice cuts the page out of a complete, ordered result.
func Slice[T any](all []T, page PageRequest) []T {
	offset := page.Offset()
	if offset >= len(all) {
		return make([]T, 0)
	}

	return all[offset : offset+min(page.Size, len(all)-offset)]
}
