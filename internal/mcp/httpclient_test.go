package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftstats/internal/analytics"
	"github.com/claude/liftstats/internal/storage"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestTrainingFrequency verifies the HTTP client sends the right query params,
// the identity header, and correctly parses the response.
func TestTrainingFrequency(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/frequency": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-User-Login"); got != "alice" {
				t.Errorf("X-User-Login=%q, want alice", got)
			}
			if got := r.URL.Query().Get("target"); got != "HIGH" {
				t.Errorf("target=%q, want HIGH", got)
			}
			if r.URL.Query().Get("start") == "" || r.URL.Query().Get("end") == "" {
				t.Error("missing start/end params")
			}

			writeTestJSON(t, w, analytics.TrainingFrequencySummary{
				TotalWorkouts: 12,
				AvgPerWeek:    3,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "alice")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	summary, err := client.TrainingFrequency(context.Background(), start, end, "HIGH", uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalWorkouts != 12 {
		t.Errorf("total_workouts=%d, want 12", summary.TotalWorkouts)
	}
}

// TestVolumeTrends verifies array responses are decoded.
func TestVolumeTrends(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/volume-trends": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []analytics.ExerciseVolumeTrend{
				{ExerciseName: "Bench Press", TotalVolume: 12500, Trend: "increasing"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "alice")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	trends, err := client.VolumeTrends(context.Background(), start, end, uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(trends) != 1 {
		t.Fatalf("got %d trends, want 1", len(trends))
	}
	if trends[0].Trend != "increasing" {
		t.Errorf("trend=%q, want increasing", trends[0].Trend)
	}
}

// TestCompareSessionsParams verifies both session IDs are sent as query params.
func TestCompareSessionsParams(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/compare": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("a"); got != first.String() {
				t.Errorf("a=%q, want %s", got, first)
			}
			if got := r.URL.Query().Get("b"); got != second.String() {
				t.Errorf("b=%q, want %s", got, second)
			}
			writeTestJSON(t, w, analytics.SessionComparison{})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "alice")
	if _, err := client.CompareSessions(context.Background(), first, second, uuid.Nil); err != nil {
		t.Fatal(err)
	}
}

// TestRecentSessionsLimit verifies the limit param and decoding.
func TestRecentSessionsLimit(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sessions": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "5" {
				t.Errorf("limit=%q, want 5", got)
			}
			writeTestJSON(t, w, []analytics.SessionSummary{
				{SessionID: uuid.New(), Sets: 12, Reps: 96, Volume: 8400},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "alice")
	sessions, err := client.RecentSessions(context.Background(), 5, uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].Volume != 8400 {
		t.Errorf("volume=%f, want 8400", sessions[0].Volume)
	}
}

// TestDataStats verifies single-struct decoding.
func TestDataStats(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/data": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, storage.DataStats{
				TotalSessions:  40,
				TotalSets:      620,
				TotalTemplates: 3,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "alice")
	stats, err := client.DataStats(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSets != 620 {
		t.Errorf("total_sets=%d, want 620", stats.TotalSets)
	}
}

// TestHTTPClientServerError verifies the client returns an error on non-200 responses.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/milestones": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "alice")
	_, err := client.Milestones(context.Background(), uuid.Nil)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestMilestones verifies milestone decoding.
func TestMilestones(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/milestones": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []analytics.MilestoneAward{
				{Title: "Momentum", Icon: "flame", AchievedDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "alice")
	awards, err := client.Milestones(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 1 {
		t.Fatalf("got %d awards, want 1", len(awards))
	}
	if awards[0].Title != "Momentum" {
		t.Errorf("title=%q, want Momentum", awards[0].Title)
	}
}

// TestPersonalRecordsFullHistory verifies the records request carries no date
// range: records cover the entire history.
func TestPersonalRecordsFullHistory(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/records": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("start") != "" || r.URL.Query().Get("end") != "" {
				t.Errorf("unexpected range params: %q", r.URL.RawQuery)
			}
			writeTestJSON(t, w, []analytics.PersonalRecord{
				{ExerciseName: "Bench Press", RecordType: "Max Weight"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "alice")
	records, err := client.PersonalRecords(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ExerciseName != "Bench Press" {
		t.Errorf("records = %+v, want one Bench Press record", records)
	}
}
