package reminders

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvance(t *testing.T) {
	cases := []struct {
		name     string
		in       time.Time
		interval RepeatInterval
		want     time.Time
	}{
		{"daily", date(2024, 2, 28), RepeatDaily, date(2024, 2, 29)},
		{"daily year end", date(2023, 12, 31), RepeatDaily, date(2024, 1, 1)},
		{"weekly", date(2024, 2, 26), RepeatWeekly, date(2024, 3, 4)},
		{"monthly keeps day", date(2024, 1, 15), RepeatMonthly, date(2024, 2, 15)},
		{"monthly jan31 leap", date(2024, 1, 31), RepeatMonthly, date(2024, 2, 29)},
		{"monthly jan31 non leap", date(2023, 1, 31), RepeatMonthly, date(2023, 2, 28)},
		{"monthly mar31", date(2024, 3, 31), RepeatMonthly, date(2024, 4, 30)},
		{"monthly dec", date(2024, 12, 31), RepeatMonthly, date(2025, 1, 31)},
		{"yearly", date(2024, 6, 1), RepeatYearly, date(2025, 6, 1)},
		{"yearly leap day", date(2024, 2, 29), RepeatYearly, date(2025, 2, 28)},
		{"none", date(2024, 2, 29), RepeatNone, date(2024, 2, 29)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Advance(tc.in, tc.interval); !got.Equal(tc.want) {
				t.Fatalf("Advance(%s, %s) = %s, want %s", tc.in.Format(time.DateOnly), tc.interval, got.Format(time.DateOnly), tc.want.Format(time.DateOnly))
			}
		})
	}
}

func TestAdvance_KeepsLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	in := time.Date(2024, 1, 31, 9, 30, 0, 0, tokyo)
	got := Advance(in, RepeatMonthly)
	if got.Location() != tokyo || got.Hour() != 9 || got.Day() != 29 {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	yesterday := Reminder{DueDate: date(2024, 3, 9)}
	if !IsOverdue(yesterday, now) {
		t.Fatalf("due yesterday and pending should be overdue")
	}

	yesterday.IsCompleted = true
	if IsOverdue(yesterday, now) {
		t.Fatalf("completed reminder is never overdue")
	}

	if IsOverdue(Reminder{DueDate: date(2024, 3, 11)}, now) {
		t.Fatalf("due tomorrow is not overdue")
	}
	if IsOverdue(Reminder{DueDate: date(2024, 3, 10)}, now.Add(15*time.Hour)) {
		t.Fatalf("due today is not overdue, regardless of time of day")
	}
}

func TestParseRepeatInterval(t *testing.T) {
	if v, ok := ParseRepeatInterval(""); !ok || v != RepeatNone {
		t.Fatalf("empty should parse as none")
	}
	if v, ok := ParseRepeatInterval(" Monthly "); !ok || v != RepeatMonthly {
		t.Fatalf("expected monthly, got %q", v)
	}
	if _, ok := ParseRepeatInterval("hourly"); ok {
		t.Fatalf("hourly must be rejected")
	}
}
