package analytics

import (
	"math"
	"testing"
)

func TestTargetDaysPerWeek(t *testing.T) {
	tests := []struct {
		frequency string
		want      float64
	}{
		{"LOW", 2},
		{"MEDIUM", 4},
		{"HIGH", 6},
		{"ATHLETE", 7},
		{"low", 2},
		{"  High  ", 6},
		{"", 3.5},
		{"whenever", 3.5},
	}

	for _, tt := range tests {
		if got := TargetDaysPerWeek(tt.frequency); got != tt.want {
			t.Errorf("TargetDaysPerWeek(%q) = %v, want %v", tt.frequency, got, tt.want)
		}
	}
}

func TestConsistencyScore(t *testing.T) {
	tests := []struct {
		name      string
		rate      float64
		frequency string
		want      float64
	}{
		{"meets high target exactly", 6, "HIGH", 100},
		{"one day on athlete target", 1, "ATHLETE", 14.29},
		{"zero rate scores zero", 0, "LOW", 0},
		{"negative rate scores zero", -1, "HIGH", 0},
		{"capped at 100", 7, "LOW", 100},
		{"default target", 3.5, "", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConsistencyScore(tt.rate, tt.frequency)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ConsistencyScore(%v, %q) = %.2f, want %.2f", tt.rate, tt.frequency, got, tt.want)
			}
		})
	}
}
