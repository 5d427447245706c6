package shared

import (
	"net/http"
	"strconv"
)

// Pagination bounds list endpoints such as the audit trail; unparseable or
// out-of-range query values fall back silently rather than erroring.
type Pagination struct {
	Limit  int
	Offset int
}

func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	p := Pagination{Limit: defaultLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		p.Offset = v
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
