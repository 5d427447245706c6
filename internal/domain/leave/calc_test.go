package leave

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountDaysInclusiveSpan(t *testing.T) {
	days, err := CountDays(SubtypeVacation, date(2025, 1, 1), date(2025, 1, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 days, got %v", days)
	}
}

func TestCountDaysSingleDay(t *testing.T) {
	days, err := CountDays(SubtypeSick, date(2025, 3, 10), date(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %v", days)
	}
}

func TestCountDaysHalfDayIgnoresRange(t *testing.T) {
	cases := []struct {
		subtype string
		start, end time.Time
	}{
		{SubtypeSickHalfDay, date(2025, 1, 1), date(2025, 1, 1)},
		{SubtypePersonalHalfDay, date(2025, 1, 1), date(2025, 1, 31)},
		{"Sick Half-Day Morning", date(2025, 6, 1), date(2025, 6, 2)},
	}
	for _, tc := range cases {
		days, err := CountDays(tc.subtype, tc.start, tc.end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if days != 0.5 {
			t.Fatalf("subtype %q: expected 0.5 days, got %v", tc.subtype, days)
		}
	}
}

func TestCountDaysEndBeforeStart(t *testing.T) {
	if _, err := CountDays(SubtypeVacation, date(2025, 2, 10), date(2025, 2, 9)); err == nil {
		t.Fatal("expected error for inverted range")
	}
}
