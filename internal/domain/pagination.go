package domain

import (
	"errors"
	"math"
)

// Pagination holds the paging, sorting, and text-search parameters of one
// request. It is an immutable value: the count query result is attached with
// WithCount, which returns a new value instead of mutating in place.
type Pagination struct {
	PageSize   int
	PageNumber int
	SortBy     string
	Text       string

	counted    bool
	count      int64
	totalPages int
}

// PageSnapshot is the serialized form of a Pagination, returned alongside
// list results. SortBy, Text, Count, and TotalPages are null when unset.
type PageSnapshot struct {
	PageSize   int     `json:"pageSize"`
	PageNumber int     `json:"pageNumber"`
	SortBy     *string `json:"sortBy"`
	Text       *string `json:"text"`
	Count      *int64  `json:"count"`
	TotalPages *int    `json:"totalPages"`
}

// WithCount returns a copy of p carrying the given total count and the derived
// total page count, ceil(count/pageSize). A Pagination with a non-positive
// page size is a configuration error and is rejected rather than producing a
// nonsensical page count.
func (p Pagination) WithCount(count int64) (Pagination, error) {
	if p.PageSize < 1 {
		return p, errors.New("pagination: page size must be positive")
	}
	if count < 0 {
		return p, errors.New("pagination: count must not be negative")
	}

	p.counted = true
	p.count = count
	p.totalPages = int(math.Ceil(float64(count) / float64(p.PageSize)))
	return p, nil
}

// Count returns the attached total count. ok is false before WithCount.
func (p Pagination) Count() (count int64, ok bool) {
	return p.count, p.counted
}

// Offset returns the number of records to skip for the current page.
func (p Pagination) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Limit returns the maximum number of records for the current page.
func (p Pagination) Limit() int {
	return p.PageSize
}

// Snapshot returns the serializable view of p.
func (p Pagination) Snapshot() PageSnapshot {
	s := PageSnapshot{
		PageSize:   p.PageSize,
		PageNumber: p.PageNumber,
	}
	if p.SortBy != "" {
		s.SortBy = &p.SortBy
	}
	if p.Text != "" {
		s.Text = &p.Text
	}
	if p.counted {
		count := p.count
		totalPages := p.totalPages
		s.Count = &count
		s.TotalPages = &totalPages
	}
	return s
}
