package finance

import (
	"testing"
	"time"
)

func TestDate_AddMonths(t *testing.T) {
	testCases := []struct {
		name string
		d    Date
		n    int
		want Date
	}{
		{name: "plain month step", d: MustDate("2024-03-15"), n: 1, want: MustDate("2024-04-15")},
		{name: "clamp to february", d: MustDate("2024-01-31"), n: 1, want: MustDate("2024-02-29")},
		{name: "clamp to february non leap", d: MustDate("2023-01-31"), n: 1, want: MustDate("2023-02-28")},
		{name: "clamp to thirty day month", d: MustDate("2024-03-31"), n: 1, want: MustDate("2024-04-30")},
		{name: "across year boundary", d: MustDate("2024-11-20"), n: 3, want: MustDate("2025-02-20")},
		{name: "full year", d: MustDate("2024-02-29"), n: 12, want: MustDate("2025-02-28")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.AddMonths(tc.n); got != tc.want {
				t.Errorf("%s.AddMonths(%d) = %s, want %s", tc.d, tc.n, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-7-1")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d != NewDate(2025, time.July, 1) {
		t.Errorf("ParseDate() = %s, want 2025-07-01", d)
	}
	if _, err := ParseDate("july 1st"); err == nil {
		t.Error("ParseDate() accepted a non-ISO date")
	}
}

func TestDate_Ordering(t *testing.T) {
	a, b := MustDate("2024-05-01"), MustDate("2024-05-02")
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before() ordering wrong for %s and %s", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After() ordering wrong for %s and %s", a, b)
	}
}

func TestParseFrequency(t *testing.T) {
	testCases := []struct {
		in      string
		want    Frequency
		wantErr bool
	}{
		{in: "monthly", want: Monthly},
		{in: "Quarter", want: Quarterly},
		{in: " yearly ", want: Yearly},
		{in: "weekly", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseFrequency(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFrequency(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFrequency(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFrequency(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
