package leave

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Known leave subtypes. The half-day variants count as 0.5 days regardless
// of the date range.
const (
	SubtypeSick            = "sick"
	SubtypePersonal        = "personal"
	SubtypeVacation        = "vacation"
	SubtypeSickHalfDay     = "sick_half-day"
	SubtypePersonalHalfDay = "personal_half-day"
)

var ErrEndBeforeStart = errors.New("end date before start date")

// IsHalfDay reports whether the subtype is a half-day variant.
func IsHalfDay(subtype string) bool {
	return strings.Contains(strings.ToLower(subtype), "half-day")
}

// CountDays computes the leave day count: 0.5 for half-day subtypes,
// otherwise the inclusive calendar span ceil((end-start)/1d)+1, clamped to
// zero or more.
func CountDays(subtype string, start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	if IsHalfDay(subtype) {
		return 0.5, nil
	}
	days := math.Ceil(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		days = 0
	}
	return days, nil
}
