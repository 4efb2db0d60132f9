package permission

import (
	"net/url"

	"github.com/mmcomponents/gateway-service/internal/domain"
)

// buildFilters extracts the whitelisted permission filters from raw query
// parameters. It is pure and total: unknown parameters are ignored, and only
// keys explicitly present end up in the filter set.
//
// enabled is coerced to a boolean: the literal "false" means false, any other
// non-empty value means true.
func buildFilters(query url.Values) domain.Filters {
	filters := domain.Filters{}
	if v := query.Get("name"); v != "" {
		filters["name"] = v
	}
	if v := query.Get("slug"); v != "" {
		filters["slug"] = v
	}
	if v := query.Get("enabled"); v != "" {
		filters["enabled"] = v != "false"
	}
	return filters
}
