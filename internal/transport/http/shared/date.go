package shared

import (
	"strings"
	"time"
)

// ParseDate reads the date fields on request and payslip forms. The
// frontend sends plain YYYY-MM-DD; full RFC3339 stamps are accepted for
// API clients.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
