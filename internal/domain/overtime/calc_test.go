package overtime

import "testing"

func TestMinutes(t *testing.T) {
	minutes, err := Minutes("08:00", "08:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 45 {
		t.Fatalf("expected 45 minutes, got %d", minutes)
	}

	minutes, err = Minutes("08:00", "10:15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 135 {
		t.Fatalf("expected 135 minutes, got %d", minutes)
	}
}

func TestMinutesRejectsNonPositiveSpan(t *testing.T) {
	if _, err := Minutes("10:00", "10:00"); err == nil {
		t.Fatal("expected error for zero span")
	}
	if _, err := Minutes("14:00", "08:00"); err == nil {
		t.Fatal("expected error for negative span")
	}
}

func TestMinutesRejectsBadClock(t *testing.T) {
	for _, raw := range []string{"8", "25:00", "08:60", "ab:cd", ""} {
		if _, err := Minutes(raw, "10:00"); err == nil {
			t.Fatalf("expected error for clock %q", raw)
		}
	}
}

func TestFormatDurationMorning(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{45, "45 minutes"},
		{60, "60 minutes"},
		{135, "15 minutes / 2 hours"},
		{61, "1 minutes / 1 hours"},
		{1500, "0 minutes / 1 hours / 1 days"},
	}
	for _, tc := range cases {
		if got := FormatDuration(SubtypeMorning, tc.minutes); got != tc.want {
			t.Fatalf("FormatDuration(morning, %d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestFormatDurationHoliday(t *testing.T) {
	if got := FormatDuration(SubtypeHoliday, 390); got != "6.50 hours" {
		t.Fatalf("expected %q, got %q", "6.50 hours", got)
	}
	if got := FormatDuration(SubtypeHoliday, 60); got != "1.00 hours" {
		t.Fatalf("expected %q, got %q", "1.00 hours", got)
	}
}
