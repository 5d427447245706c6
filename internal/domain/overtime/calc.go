package overtime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Overtime subtypes.
const (
	SubtypeMorning = "morning_ot"
	SubtypeHoliday = "holiday_ot"
)

var (
	ErrInvalidClockTime = errors.New("invalid clock time")
	ErrNonPositiveSpan  = errors.New("overtime span must be positive")
)

// ParseClock parses a same-day "HH:MM" clock time into minutes from
// midnight.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidClockTime
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, ErrInvalidClockTime
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidClockTime
	}
	return hours*60 + minutes, nil
}

// Minutes computes the overtime span between two same-day clock times. A
// zero or negative span is an error.
func Minutes(startClock, endClock string) (int, error) {
	start, err := ParseClock(startClock)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(endClock)
	if err != nil {
		return 0, err
	}
	span := end - start
	if span <= 0 {
		return 0, ErrNonPositiveSpan
	}
	return span, nil
}

// FormatDuration renders the stored minute count the way the subtype is
// displayed: morning OT as a minutes/hours/days decomposition, holiday OT
// as fractional hours with two decimals.
func FormatDuration(subtype string, totalMinutes int) string {
	switch subtype {
	case SubtypeHoliday:
		return fmt.Sprintf("%.2f hours", float64(totalMinutes)/60)
	default:
		if totalMinutes <= 60 {
			return fmt.Sprintf("%d minutes", totalMinutes)
		}
		minutes := totalMinutes % 60
		hours := totalMinutes / 60
		if hours < 24 {
			return fmt.Sprintf("%d minutes / %d hours", minutes, hours)
		}
		days := hours / 24
		hours = hours % 24
		return fmt.Sprintf("%d minutes / %d hours / %d days", minutes, hours, days)
	}
}

// Span is a convenience for reporting: the wall-clock duration of the
// stored minute count.
func Span(totalMinutes int) time.Duration {
	return time.Duration(totalMinutes) * time.Minute
}
