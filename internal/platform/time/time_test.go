package time

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatalf("Ptr(zero) should be nil")
	}
	if p := Ptr(date(2023, 3, 1)); p == nil || !p.Equal(date(2023, 3, 1)) {
		t.Fatalf("Ptr(date) mismatch")
	}
}

func TestDayAndDaysBetween(t *testing.T) {
	ny, _ := time.LoadLocation("America/New_York")
	late := time.Date(2023, 3, 1, 23, 30, 0, 0, ny)
	if got := Day(late); !got.Equal(date(2023, 3, 1)) {
		t.Fatalf("Day kept wall date? got %v", got)
	}

	cases := []struct {
		a, b time.Time
		want int
	}{
		{date(2023, 3, 1), date(2023, 5, 30), 90},
		{date(2023, 5, 30), date(2023, 3, 1), -90},
		{date(2024, 2, 28), date(2024, 3, 1), 2}, // leap year
		{date(2023, 1, 1), date(2023, 1, 1), 0},
	}
	for _, c := range cases {
		if got := DaysBetween(c.a, c.b); got != c.want {
			t.Fatalf("DaysBetween(%v,%v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestParseAddFormat(t *testing.T) {
	d, ok := ParseDate("2023-03-01")
	if !ok {
		t.Fatalf("ParseDate failed")
	}
	if got := AddDays(d, 90); !got.Equal(date(2023, 5, 30)) {
		t.Fatalf("AddDays = %v", got)
	}
	if _, ok := ParseDate("N/A"); ok {
		t.Fatalf("ParseDate(N/A) should fail")
	}
	if Format(nil) != nil {
		t.Fatalf("Format(nil) should be nil")
	}
	if s := Format(&d); s == nil || *s != "2023-03-01" {
		t.Fatalf("Format mismatch")
	}
}

func TestEarliestLatest(t *testing.T) {
	a, b := date(2023, 1, 5), date(2022, 12, 1)
	if got := Earliest(nil, &a, &b); got == nil || !got.Equal(b) {
		t.Fatalf("Earliest = %v", got)
	}
	if got := Latest(&b, nil, &a); got == nil || !got.Equal(a) {
		t.Fatalf("Latest = %v", got)
	}
	if Earliest() != nil || Latest(nil, nil) != nil {
		t.Fatalf("absent inputs should yield nil")
	}
}
