package pkg

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mmcomponents/gateway-service/internal/domain"
)

// PageDefaults carries the configured pagination defaults applied when a
// request omits or mangles its paging parameters.
type PageDefaults struct {
	PageSize    int
	PageNumber  int
	MaxPageSize int
}

// validFieldName matches only identifiers safe to splice into a query.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePagination builds a Pagination from the request's query parameters.
// Missing, non-numeric, or non-positive pageSize/pageNumber values are clamped
// to the configured defaults; pageSize is additionally capped at MaxPageSize.
func ParsePagination(c *gin.Context, defaults PageDefaults) domain.Pagination {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaults.PageSize)))
	if pageSize < 1 {
		pageSize = defaults.PageSize
	}
	if defaults.MaxPageSize > 0 && pageSize > defaults.MaxPageSize {
		pageSize = defaults.MaxPageSize
	}

	pageNumber, _ := strconv.Atoi(c.DefaultQuery("pageNumber", strconv.Itoa(defaults.PageNumber)))
	if pageNumber < 1 {
		pageNumber = defaults.PageNumber
	}

	return domain.Pagination{
		PageSize:   pageSize,
		PageNumber: pageNumber,
		SortBy:     c.Query("sortBy"),
		Text:       c.Query("text"),
	}
}

// Paginate returns a GORM scope applying LIMIT and OFFSET for the given page.
func Paginate(p domain.Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit())
	}
}

// Sort returns a GORM scope applying an ascending ORDER BY on the requested
// field. Fields outside the allowed list are silently ignored and the query
// keeps its natural order. Field names are pattern-checked before being
// spliced into SQL.
func Sort(p domain.Pagination, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(p.SortBy)
		if field == "" {
			return db
		}
		if !validFieldName.MatchString(field) || !slices.Contains(allowed, field) {
			return db
		}
		return db.Order(field + " asc")
	}
}

// Filter returns a GORM scope applying exact-match WHERE conditions for every
// entry in the filter set. Keys outside the allowed list are silently ignored.
func Filter(filters domain.Filters, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range filters {
			if !validFieldName.MatchString(key) || !slices.Contains(allowed, key) {
				continue
			}
			db = db.Where(key+" = ?", value)
		}
		return db
	}
}

// TextSearch returns a GORM scope matching the pagination's free-text token
// against any of the given fields with LIKE '%text%'. A no-op when the
// request carries no text.
func TextSearch(p domain.Pagination, fields []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Text == "" || len(fields) == 0 {
			return db
		}
		clauses := make([]string, 0, len(fields))
		args := make([]any, 0, len(fields))
		pattern := "%" + p.Text + "%"
		for _, f := range fields {
			if !validFieldName.MatchString(f) {
				continue
			}
			clauses = append(clauses, f+" LIKE ?")
			args = append(args, pattern)
		}
		if len(clauses) == 0 {
			return db
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// ListResult is the response envelope for list endpoints: the page of records
// plus the pagination snapshot describing it.
type ListResult[T any] struct {
	Records    []T                 `json:"records"`
	Pagination domain.PageSnapshot `json:"pagination"`
}

// NewListResult builds a ListResult, normalizing a nil slice to an empty one
// so the records field always serializes as a JSON array.
func NewListResult[T any](records []T, p domain.Pagination) ListResult[T] {
	if records == nil {
		records = []T{}
	}
	return ListResult[T]{
		Records:    records,
		Pagination: p.Snapshot(),
	}
}
