package analytics

import (
	"math"
	"testing"
	"time"
)

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", day(2026, time.March, 2), day(2026, time.March, 2)},
		{"wednesday", day(2026, time.March, 4), day(2026, time.March, 2)},
		{"sunday maps back six days", day(2026, time.March, 8), day(2026, time.March, 2)},
		{"timestamp mid-day", time.Date(2026, time.March, 5, 18, 30, 0, 0, time.UTC), day(2026, time.March, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MondayOf(tt.in); !got.Equal(tt.want) {
				t.Errorf("MondayOf(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestISOWeekKey(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{day(2026, time.January, 1), "2026:01"},
		// Jan 1 2027 is a Friday, still ISO week 53 of 2026.
		{day(2027, time.January, 1), "2026:53"},
		{day(2026, time.December, 28), "2026:53"},
	}

	for _, tt := range tests {
		if got := ISOWeekKey(tt.in); got != tt.want {
			t.Errorf("ISOWeekKey(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWeekSpansClipsFinalWeek(t *testing.T) {
	spans := WeekSpans(day(2026, time.March, 2), day(2026, time.March, 18))
	if len(spans) != 3 {
		t.Fatalf("spans = %d, want 3", len(spans))
	}
	if !spans[0].Start.Equal(day(2026, time.March, 2)) || !spans[0].End.Equal(day(2026, time.March, 8)) {
		t.Errorf("span[0] = %v..%v", spans[0].Start, spans[0].End)
	}
	if !spans[2].Start.Equal(day(2026, time.March, 16)) || !spans[2].End.Equal(day(2026, time.March, 18)) {
		t.Errorf("final span = %v..%v, want clipped to March 18", spans[2].Start, spans[2].End)
	}
}

func TestWeekSpansSingleDayRange(t *testing.T) {
	spans := WeekSpans(day(2026, time.March, 2), day(2026, time.March, 2))
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if !spans[0].End.Equal(spans[0].Start) {
		t.Errorf("single-day span end = %v, want %v", spans[0].End, spans[0].Start)
	}
}

func TestAverageUniqueDaysPerWeek(t *testing.T) {
	daySet := func(dates ...time.Time) map[time.Time]struct{} {
		m := make(map[time.Time]struct{})
		for _, d := range dates {
			m[d] = struct{}{}
		}
		return m
	}

	tests := []struct {
		name       string
		days       map[time.Time]struct{}
		start, end time.Time
		want       float64
	}{
		{
			name:  "empty set",
			days:  daySet(),
			start: day(2026, time.March, 1), end: day(2026, time.March, 28),
			want: 0,
		},
		{
			name: "four days over four weeks",
			days: daySet(day(2026, time.March, 2), day(2026, time.March, 9),
				day(2026, time.March, 16), day(2026, time.March, 23)),
			start: day(2026, time.March, 1), end: day(2026, time.March, 28),
			want: 1.0,
		},
		{
			// Sub-week range divides by one full week, so the rate never
			// exceeds the observed unique-day count.
			name:  "three days over a three-day range",
			days:  daySet(day(2026, time.March, 2), day(2026, time.March, 3), day(2026, time.March, 4)),
			start: day(2026, time.March, 2), end: day(2026, time.March, 4),
			want: 3.0,
		},
		{
			name: "capped at seven",
			days: daySet(day(2026, time.March, 2), day(2026, time.March, 3), day(2026, time.March, 4),
				day(2026, time.March, 5), day(2026, time.March, 6), day(2026, time.March, 7),
				day(2026, time.March, 8), day(2026, time.March, 9)),
			start: day(2026, time.March, 2), end: day(2026, time.March, 9),
			want: 7.0,
		},
		{
			name:  "inverted range",
			days:  daySet(day(2026, time.March, 2)),
			start: day(2026, time.March, 9), end: day(2026, time.March, 2),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageUniqueDaysPerWeek(tt.days, tt.start, tt.end)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("AverageUniqueDaysPerWeek = %.3f, want %.3f", got, tt.want)
			}
		})
	}
}
