package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBillableMonths(t *testing.T) {
	cases := []struct {
		name   string
		start  time.Time
		end    time.Time
		months int
	}{
		{"two weeks rounds up to one month", date(2024, 1, 1), date(2024, 1, 15), 1},
		{"exactly thirty days is one month", date(2024, 1, 1), date(2024, 1, 31), 1},
		{"thirty-one days rounds up to two", date(2024, 1, 1), date(2024, 2, 1), 2},
		{"sixty days is two months", date(2024, 1, 1), date(2024, 3, 1), 2},
		{"one day still bills one month", date(2024, 1, 1), date(2024, 1, 2), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BillableMonths(tc.start, tc.end); got != tc.months {
				t.Fatalf("BillableMonths(%v, %v) = %d, want %d", tc.start, tc.end, got, tc.months)
			}
		})
	}
}

func TestRentalCost(t *testing.T) {
	if got := RentalCost(1000, date(2024, 1, 1), date(2024, 1, 15)); got != 1000 {
		t.Fatalf("expected 1000, got %v", got)
	}
	if got := RentalCost(1000, date(2024, 1, 1), date(2024, 3, 1)); got != 2000 {
		t.Fatalf("expected 2000, got %v", got)
	}
}

func TestDateOnlyStripsClock(t *testing.T) {
	in := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	out := DateOnly(in)
	if out.Hour() != 0 || out.Minute() != 0 || out.Second() != 0 {
		t.Fatalf("DateOnly left clock components: %v", out)
	}
	if out.Day() != 15 {
		t.Fatalf("DateOnly changed the day: %v", out)
	}
}

func TestRandomNumericString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := RandomNumericString(6)
		if len(s) != 6 {
			t.Fatalf("expected 6 digits, got %q", s)
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in %q", s)
			}
		}
		seen[s] = true
	}
	// 100 draws from a million values colliding down to a handful would
	// mean the generator is broken.
	if len(seen) < 90 {
		t.Fatalf("suspiciously many collisions: %d unique of 100", len(seen))
	}
}
