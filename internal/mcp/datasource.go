package mcp

import (
	"context"
	"time"

	"github.com/claude/liftstats/internal/analytics"
	"github.com/claude/liftstats/internal/stats"
	"github.com/claude/liftstats/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the analytics layer for MCP tools. Both LocalSource
// (direct database access) and HTTPClient (remote via REST API) satisfy this
// interface.
type DataSource interface {
	TrainingFrequency(ctx context.Context, start, end time.Time, target string, userID uuid.UUID) (analytics.TrainingFrequencySummary, error)
	VolumeTrends(ctx context.Context, start, end time.Time, userID uuid.UUID) ([]analytics.ExerciseVolumeTrend, error)
	ProgressiveOverload(ctx context.Context, start, end time.Time, userID uuid.UUID) ([]analytics.ProgressiveOverload, error)
	PersonalRecords(ctx context.Context, userID uuid.UUID) ([]analytics.PersonalRecord, error)
	Milestones(ctx context.Context, userID uuid.UUID) ([]analytics.MilestoneAward, error)
	TemplateAnalytics(ctx context.Context, start, end time.Time, userID uuid.UUID) ([]analytics.TemplateAnalytics, error)
	CompareSessions(ctx context.Context, firstID, secondID, userID uuid.UUID) (*analytics.SessionComparison, error)
	WeeklySummary(ctx context.Context, start, end time.Time, userID uuid.UUID) (analytics.WeeklySummary, error)
	RecentSessions(ctx context.Context, limit int, userID uuid.UUID) ([]analytics.SessionSummary, error)
	DataStats(ctx context.Context, userID uuid.UUID) (*storage.DataStats, error)
}

// LocalSource implements DataSource against a local database through the
// stats service.
type LocalSource struct {
	svc *stats.Service
}

// Compile-time check: *LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

// NewLocalSource wraps a stats.Service as a DataSource.
func NewLocalSource(svc *stats.Service) *LocalSource {
	return &LocalSource{svc: svc}
}

func (l *LocalSource) TrainingFrequency(ctx context.Context, start, end time.Time, target string, userID uuid.UUID) (analytics.TrainingFrequencySummary, error) {
	return l.svc.TrainingFrequency(ctx, userID, start, end, target)
}

func (l *LocalSource) VolumeTrends(ctx context.Context, start, end time.Time, userID uuid.UUID) ([]analytics.ExerciseVolumeTrend, error) {
	return l.svc.VolumeTrends(ctx, userID, start, end)
}

func (l *LocalSource) ProgressiveOverload(ctx context.Context, start, end time.Time, userID uuid.UUID) ([]analytics.ProgressiveOverload, error) {
	return l.svc.ProgressiveOverload(ctx, userID, start, end)
}

func (l *LocalSource) PersonalRecords(ctx context.Context, userID uuid.UUID) ([]analytics.PersonalRecord, error) {
	return l.svc.PersonalRecords(ctx, userID)
}

func (l *LocalSource) Milestones(ctx context.Context, userID uuid.UUID) ([]analytics.MilestoneAward, error) {
	return l.svc.Milestones(ctx, userID)
}

func (l *LocalSource) TemplateAnalytics(ctx context.Context, start, end time.Time, userID uuid.UUID) ([]analytics.TemplateAnalytics, error) {
	return l.svc.TemplateAnalytics(ctx, userID, start, end)
}

func (l *LocalSource) CompareSessions(ctx context.Context, firstID, secondID, userID uuid.UUID) (*analytics.SessionComparison, error) {
	return l.svc.CompareSessions(ctx, userID, firstID, secondID)
}

func (l *LocalSource) WeeklySummary(ctx context.Context, start, end time.Time, userID uuid.UUID) (analytics.WeeklySummary, error) {
	return l.svc.WeeklySummary(ctx, userID, start, end)
}

func (l *LocalSource) RecentSessions(ctx context.Context, limit int, userID uuid.UUID) ([]analytics.SessionSummary, error) {
	return l.svc.RecentSessions(ctx, userID, limit)
}

func (l *LocalSource) DataStats(ctx context.Context, userID uuid.UUID) (*storage.DataStats, error) {
	return l.svc.DataStats(ctx, userID)
}
