package mcp

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// TestUserIDFromContextDefault verifies the nil user ID when no value is set
// in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != uuid.Nil {
		t.Errorf("UserIDFromContext(empty) = %v, want uuid.Nil", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	want := uuid.New()
	ctx := WithUserID(context.Background(), want)
	if id := UserIDFromContext(ctx); id != want {
		t.Errorf("UserIDFromContext = %v, want %v", id, want)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 90 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 90 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 2159 || diff.Hours() > 2161 { // ~2160 hours = 90 days
		t.Errorf("default range = %.0f hours, want ~2160", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2026 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2026-01-01", start)
	}
	if end.Year() != 2026 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2026-01-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2026-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}
