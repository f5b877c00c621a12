package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftstats/internal/analytics"
	"github.com/claude/liftstats/internal/storage"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the LiftStats REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale). Identity
// is carried by the X-User-Login header, so the per-call user ID
// arguments are ignored.
type HTTPClient struct {
	baseURL    string
	userLogin  string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL,
// authenticating as the given user login.
func NewHTTPClient(baseURL, userLogin string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userLogin:  userLogin,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.userLogin != "" {
		req.Header.Set("X-User-Login", c.userLogin)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func (c *HTTPClient) TrainingFrequency(ctx context.Context, start, end time.Time, target string, _ uuid.UUID) (analytics.TrainingFrequencySummary, error) {
	params := timeParams(start, end)
	if target != "" {
		params.Set("target", target)
	}

	body, err := c.get(ctx, "/api/v1/stats/frequency", params)
	if err != nil {
		return analytics.TrainingFrequencySummary{}, err
	}

	var summary analytics.TrainingFrequencySummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return analytics.TrainingFrequencySummary{}, fmt.Errorf("httpclient: decode frequency: %w", err)
	}
	return summary, nil
}

func (c *HTTPClient) VolumeTrends(ctx context.Context, start, end time.Time, _ uuid.UUID) ([]analytics.ExerciseVolumeTrend, error) {
	body, err := c.get(ctx, "/api/v1/stats/volume-trends", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var trends []analytics.ExerciseVolumeTrend
	if err := json.Unmarshal(body, &trends); err != nil {
		return nil, fmt.Errorf("httpclient: decode volume trends: %w", err)
	}
	return trends, nil
}

func (c *HTTPClient) ProgressiveOverload(ctx context.Context, start, end time.Time, _ uuid.UUID) ([]analytics.ProgressiveOverload, error) {
	body, err := c.get(ctx, "/api/v1/stats/overload", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var overload []analytics.ProgressiveOverload
	if err := json.Unmarshal(body, &overload); err != nil {
		return nil, fmt.Errorf("httpclient: decode overload: %w", err)
	}
	return overload, nil
}

func (c *HTTPClient) PersonalRecords(ctx context.Context, _ uuid.UUID) ([]analytics.PersonalRecord, error) {
	body, err := c.get(ctx, "/api/v1/stats/records", nil)
	if err != nil {
		return nil, err
	}

	var records []analytics.PersonalRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) Milestones(ctx context.Context, _ uuid.UUID) ([]analytics.MilestoneAward, error) {
	body, err := c.get(ctx, "/api/v1/stats/milestones", nil)
	if err != nil {
		return nil, err
	}

	var awards []analytics.MilestoneAward
	if err := json.Unmarshal(body, &awards); err != nil {
		return nil, fmt.Errorf("httpclient: decode milestones: %w", err)
	}
	return awards, nil
}

func (c *HTTPClient) TemplateAnalytics(ctx context.Context, start, end time.Time, _ uuid.UUID) ([]analytics.TemplateAnalytics, error) {
	body, err := c.get(ctx, "/api/v1/stats/templates", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var templates []analytics.TemplateAnalytics
	if err := json.Unmarshal(body, &templates); err != nil {
		return nil, fmt.Errorf("httpclient: decode templates: %w", err)
	}
	return templates, nil
}

func (c *HTTPClient) CompareSessions(ctx context.Context, firstID, secondID, _ uuid.UUID) (*analytics.SessionComparison, error) {
	params := url.Values{}
	params.Set("a", firstID.String())
	params.Set("b", secondID.String())

	body, err := c.get(ctx, "/api/v1/stats/compare", params)
	if err != nil {
		return nil, err
	}

	var comparison analytics.SessionComparison
	if err := json.Unmarshal(body, &comparison); err != nil {
		return nil, fmt.Errorf("httpclient: decode comparison: %w", err)
	}
	return &comparison, nil
}

func (c *HTTPClient) WeeklySummary(ctx context.Context, start, end time.Time, _ uuid.UUID) (analytics.WeeklySummary, error) {
	body, err := c.get(ctx, "/api/v1/stats/weekly", timeParams(start, end))
	if err != nil {
		return analytics.WeeklySummary{}, err
	}

	var summary analytics.WeeklySummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return analytics.WeeklySummary{}, fmt.Errorf("httpclient: decode weekly summary: %w", err)
	}
	return summary, nil
}

func (c *HTTPClient) RecentSessions(ctx context.Context, limit int, _ uuid.UUID) ([]analytics.SessionSummary, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/sessions", params)
	if err != nil {
		return nil, err
	}

	var sessions []analytics.SessionSummary
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) DataStats(ctx context.Context, _ uuid.UUID) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats/data", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode data stats: %w", err)
	}
	return &stats, nil
}
