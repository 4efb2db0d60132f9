package pkg

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mmcomponents/gateway-service/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testDefaults = PageDefaults{PageSize: 20, PageNumber: 1, MaxPageSize: 100}

func newTestContext(queryParams url.Values) *gin.Context {
	req := httptest.NewRequest(http.MethodGet, "/?"+queryParams.Encode(), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestParsePagination_Defaults(t *testing.T) {
	c := newTestContext(url.Values{})
	p := ParsePagination(c, testDefaults)

	if p.PageSize != 20 {
		t.Errorf("PageSize = %d; want 20", p.PageSize)
	}
	if p.PageNumber != 1 {
		t.Errorf("PageNumber = %d; want 1", p.PageNumber)
	}
	if p.SortBy != "" || p.Text != "" {
		t.Errorf("expected empty sortBy and text, got %q, %q", p.SortBy, p.Text)
	}
	if _, ok := p.Count(); ok {
		t.Error("expected count to be unset")
	}
}

func TestParsePagination_ExplicitOverridesDefaults(t *testing.T) {
	c := newTestContext(url.Values{
		"pageSize":   {"10"},
		"pageNumber": {"2"},
		"sortBy":     {"slug"},
		"text":       {"admin"},
	})
	p := ParsePagination(c, testDefaults)

	if p.PageSize != 10 {
		t.Errorf("PageSize = %d; want 10", p.PageSize)
	}
	if p.PageNumber != 2 {
		t.Errorf("PageNumber = %d; want 2", p.PageNumber)
	}
	if p.SortBy != "slug" {
		t.Errorf("SortBy = %q; want slug", p.SortBy)
	}
	if p.Text != "admin" {
		t.Errorf("Text = %q; want admin", p.Text)
	}
}

func TestParsePagination_Clamping(t *testing.T) {
	tests := []struct {
		name           string
		params         url.Values
		wantPageSize   int
		wantPageNumber int
	}{
		{"zero page size", url.Values{"pageSize": {"0"}}, 20, 1},
		{"negative page size", url.Values{"pageSize": {"-3"}}, 20, 1},
		{"non-numeric page size", url.Values{"pageSize": {"abc"}}, 20, 1},
		{"oversize page size", url.Values{"pageSize": {"500"}}, 100, 1},
		{"zero page number", url.Values{"pageNumber": {"0"}}, 20, 1},
		{"negative page number", url.Values{"pageNumber": {"-1"}}, 20, 1},
		{"non-numeric page number", url.Values{"pageNumber": {"two"}}, 20, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePagination(newTestContext(tt.params), testDefaults)
			if p.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d; want %d", p.PageSize, tt.wantPageSize)
			}
			if p.PageNumber != tt.wantPageNumber {
				t.Errorf("PageNumber = %d; want %d", p.PageNumber, tt.wantPageNumber)
			}
		})
	}
}

func TestNewListResult(t *testing.T) {
	p := domain.Pagination{PageSize: 10, PageNumber: 2}
	counted, err := p.WithCount(41)
	if err != nil {
		t.Fatalf("WithCount: %v", err)
	}

	result := NewListResult([]string{"a", "b"}, counted)
	if len(result.Records) != 2 {
		t.Errorf("len(Records) = %d; want 2", len(result.Records))
	}
	if result.Pagination.TotalPages == nil || *result.Pagination.TotalPages != 5 {
		t.Errorf("totalPages = %v; want 5", result.Pagination.TotalPages)
	}
	if result.Pagination.Count == nil || *result.Pagination.Count != 41 {
		t.Errorf("count = %v; want 41", result.Pagination.Count)
	}
}

func TestNewListResult_NilRecords(t *testing.T) {
	result := NewListResult[string](nil, domain.Pagination{PageSize: 20, PageNumber: 1})
	if result.Records == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(result.Records) != 0 {
		t.Errorf("len(Records) = %d; want 0", len(result.Records))
	}
}
