package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 100
	MaxLimit     = 200
)

// OffsetPage carries normalized limit/offset values parsed from a request.
type OffsetPage struct {
	Limit  int
	Offset int
}

// ParseOffsetPage reads limit/offset query params, clamping bad or missing
// values instead of rejecting the request.
func ParseOffsetPage(r *http.Request) OffsetPage {
	page := OffsetPage{Limit: DefaultLimit}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page.Limit = v
		}
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page.Offset = v
		}
	}

	return page
}
