// Package stats composes storage reads with the analytics engine. The HTTP
// handlers and the MCP tools both go through the Service so the two surfaces
// always report the same numbers.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/liftstats/internal/analytics"
	"github.com/claude/liftstats/internal/models"
	"github.com/claude/liftstats/internal/storage"
	"github.com/google/uuid"
)

// Service answers analytics queries for one database.
type Service struct {
	db  *storage.DB
	log *slog.Logger
}

// New creates a Service.
func New(db *storage.DB, log *slog.Logger) *Service {
	return &Service{db: db, log: log}
}

// queryEnd converts an inclusive end date into the exclusive bound the
// half-open storage query expects: the start of the following day.
func queryEnd(to time.Time) time.Time {
	return analytics.DayOf(to).AddDate(0, 0, 1)
}

// loadInput fetches a user's sessions started between from and the end of
// to's calendar day, their sets, and the exercise catalog.
func (s *Service) loadInput(ctx context.Context, userID uuid.UUID, from, to time.Time) (analytics.Input, error) {
	sessions, err := s.db.QuerySessions(ctx, userID, from, queryEnd(to))
	if err != nil {
		return analytics.Input{}, fmt.Errorf("loading sessions: %w", err)
	}

	ids := make([]uuid.UUID, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}
	sets, err := s.db.QuerySetsForSessions(ctx, ids)
	if err != nil {
		return analytics.Input{}, fmt.Errorf("loading sets: %w", err)
	}

	exercises, err := s.db.AllExercises(ctx)
	if err != nil {
		return analytics.Input{}, fmt.Errorf("loading exercises: %w", err)
	}

	return analytics.Input{Sessions: sessions, Sets: sets, Exercises: exercises}, nil
}

// TrainingFrequency returns the frequency and consistency summary for
// [from, to]; to is the inclusive last day of the range.
func (s *Service) TrainingFrequency(ctx context.Context, userID uuid.UUID, from, to time.Time, targetFrequency string) (analytics.TrainingFrequencySummary, error) {
	in, err := s.loadInput(ctx, userID, from, to)
	if err != nil {
		return analytics.TrainingFrequencySummary{}, err
	}
	return analytics.TrainingFrequency(in, from, to, targetFrequency, time.Now().UTC()), nil
}

// VolumeTrends returns per-exercise weekly volume trends for [from, to].
func (s *Service) VolumeTrends(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]analytics.ExerciseVolumeTrend, error) {
	in, err := s.loadInput(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return analytics.ExerciseVolumeTrends(in), nil
}

// ProgressiveOverload returns per-exercise progression tracking for
// [from, to]; progression status is judged against the inclusive end day.
func (s *Service) ProgressiveOverload(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]analytics.ProgressiveOverload, error) {
	in, err := s.loadInput(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return analytics.TrackProgressiveOverload(in, to), nil
}

// PersonalRecords returns the user's best sets per exercise over their
// entire history. Records never expire, so no date range applies.
func (s *Service) PersonalRecords(ctx context.Context, userID uuid.UUID) ([]analytics.PersonalRecord, error) {
	in, err := s.loadInput(ctx, userID, time.Time{}, farFuture)
	if err != nil {
		return nil, err
	}
	return analytics.PersonalRecords(in, time.Now().UTC()), nil
}

// Milestones reconciles and returns the user's milestones against their full
// history. The reconciliation runs under a per-user lock so concurrent calls
// do not duplicate rows.
func (s *Service) Milestones(ctx context.Context, userID uuid.UUID) ([]analytics.MilestoneAward, error) {
	in, err := s.loadInput(ctx, userID, time.Time{}, farFuture)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	agg := analytics.CollectAggregateStats(in, now)

	var awards []analytics.MilestoneAward
	err = s.db.WithMilestoneLock(ctx, userID, func(tx *storage.MilestoneTx) error {
		awards, err = analytics.ReconcileMilestones(ctx, tx, userID, agg, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reconciling milestones: %w", err)
	}
	return awards, nil
}

// TemplateAnalytics returns per-template stats over [from, to].
func (s *Service) TemplateAnalytics(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]analytics.TemplateAnalytics, error) {
	in, err := s.loadInput(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	templates, err := s.db.QueryTemplates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	ids := make([]uuid.UUID, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
	}
	items, err := s.db.QueryTemplateItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading template items: %w", err)
	}
	return analytics.BuildTemplateAnalytics(in, templates, items), nil
}

// CompareSessions returns a structured diff between two of the user's
// sessions. Returns analytics.ErrForbidden when either session belongs to
// someone else.
func (s *Service) CompareSessions(ctx context.Context, userID, firstID, secondID uuid.UUID) (*analytics.SessionComparison, error) {
	first, err := s.db.GetSession(ctx, firstID)
	if err != nil {
		return nil, fmt.Errorf("loading first session: %w", err)
	}
	second, err := s.db.GetSession(ctx, secondID)
	if err != nil {
		return nil, fmt.Errorf("loading second session: %w", err)
	}

	sets, err := s.db.QuerySetsForSessions(ctx, []uuid.UUID{firstID, secondID})
	if err != nil {
		return nil, fmt.Errorf("loading sets: %w", err)
	}
	var firstSets, secondSets []models.WorkoutSet
	for _, ws := range sets {
		switch ws.SessionID {
		case firstID:
			firstSets = append(firstSets, ws)
		case secondID:
			secondSets = append(secondSets, ws)
		}
	}

	exercises, err := s.db.AllExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading exercises: %w", err)
	}

	return analytics.CompareSessions(userID, *first, *second, firstSets, secondSets, exercises)
}

// WeeklySummary returns the day-by-day activity breakdown for every calendar
// day of [from, to].
func (s *Service) WeeklySummary(ctx context.Context, userID uuid.UUID, from, to time.Time) (analytics.WeeklySummary, error) {
	in, err := s.loadInput(ctx, userID, from, to)
	if err != nil {
		return analytics.WeeklySummary{}, err
	}
	return analytics.BuildWeeklySummary(in, from, to), nil
}

// RecentSessions returns the user's most recent session summaries, newest
// first.
func (s *Service) RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]analytics.SessionSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	in, err := s.loadInput(ctx, userID, time.Time{}, farFuture)
	if err != nil {
		return nil, err
	}
	summaries := analytics.SessionSummaries(in)
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// DataStats returns aggregate counts about the user's stored data.
func (s *Service) DataStats(ctx context.Context, userID uuid.UUID) (*storage.DataStats, error) {
	return s.db.GetDataStats(ctx, userID)
}

var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
