package permission

import (
	"net/url"
	"testing"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  map[string]any
	}{
		{
			name:  "no parameters yields empty set",
			query: url.Values{},
			want:  map[string]any{},
		},
		{
			name:  "name and slug pass through",
			query: url.Values{"name": {"Admin"}, "slug": {"admin"}},
			want:  map[string]any{"name": "Admin", "slug": "admin"},
		},
		{
			name:  "enabled false string coerces to false",
			query: url.Values{"enabled": {"false"}},
			want:  map[string]any{"enabled": false},
		},
		{
			name:  "enabled true coerces to true",
			query: url.Values{"enabled": {"true"}},
			want:  map[string]any{"enabled": true},
		},
		{
			name:  "any other enabled value coerces to true",
			query: url.Values{"enabled": {"banana"}},
			want:  map[string]any{"enabled": true},
		},
		{
			name:  "unknown parameters are ignored",
			query: url.Values{"pageSize": {"10"}, "sortBy": {"slug"}, "color": {"red"}},
			want:  map[string]any{},
		},
		{
			name:  "empty values are treated as absent",
			query: url.Values{"name": {""}, "enabled": {""}},
			want:  map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildFilters(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("filters = %v; want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("filters[%q] = %v; want %v", k, got[k], v)
				}
			}
		})
	}
}
