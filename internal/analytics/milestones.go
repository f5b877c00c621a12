package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// AggregateStats is the lifetime/recent snapshot milestone predicates test.
// Only FINISHED sessions contribute.
type AggregateStats struct {
	CompletedSessions   int     `json:"completed_sessions"`
	TotalVolume         float64 `json:"total_volume"`
	CompletedLast30Days int     `json:"completed_last_30_days"`
}

// CollectAggregateStats builds the milestone snapshot from the user's full
// supplied history.
func CollectAggregateStats(in Input, now time.Time) AggregateStats {
	finished := make(map[uuid.UUID]struct{})
	stats := AggregateStats{}
	periodStart := DayOf(now).AddDate(0, 0, -29)

	for _, s := range in.Sessions {
		if s.Status != models.SessionFinished {
			continue
		}
		finished[s.ID] = struct{}{}
		stats.CompletedSessions++
		if !DayOf(s.StartedAt).Before(periodStart) {
			stats.CompletedLast30Days++
		}
	}
	for _, ws := range in.Sets {
		if _, ok := finished[ws.SessionID]; !ok {
			continue
		}
		if v, ok := mainSetVolume(ws); ok {
			stats.TotalVolume += v
		}
	}
	return stats
}

// MilestoneRule is one declarative achievement rule. Key is the persisted
// title and must stay stable across releases; Title is the display name.
// Permanent marks rules whose underlying stat cannot regress (total volume is
// monotonic), so an earned row is never deleted even if the predicate were to
// read false.
type MilestoneRule struct {
	Key         string
	Title       string
	Description string
	Type        models.MilestoneType
	Permanent   bool
	Achieved    func(AggregateStats) bool
	Icon        string
}

// MilestoneRules is the fixed, ordered rule set evaluated on every
// reconciliation.
var MilestoneRules = []MilestoneRule{
	{Key: "Momentum (10 Sessions)", Title: "Momentum", Description: "Completed 10 workout sessions", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedSessions >= 10 }, Icon: "🚀"},
	{Key: "Getting Started", Title: "Getting Started", Description: "25+ workout sessions completed", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedSessions >= 25 }, Icon: "🎯"},
	{Key: "Dedicated (50 Sessions)", Title: "Dedicated", Description: "50+ workout sessions completed", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedSessions >= 50 }, Icon: "💪"},
	{Key: "Centurion", Title: "Centurion", Description: "100+ workout sessions completed", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedSessions >= 100 }, Icon: "🏋️"},
	{Key: "Iron Veteran", Title: "Iron Veteran", Description: "250+ workout sessions completed", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedSessions >= 250 }, Icon: "🛡️"},

	{Key: "100K Club", Title: "100K Club", Description: "Lifted 100,000+ lbs total", Type: models.MilestoneVolume, Permanent: true,
		Achieved: func(s AggregateStats) bool { return s.TotalVolume >= 100_000 }, Icon: "💪"},
	{Key: "Quarter Million", Title: "Quarter Million", Description: "Lifted 250,000+ lbs total", Type: models.MilestoneVolume, Permanent: true,
		Achieved: func(s AggregateStats) bool { return s.TotalVolume >= 250_000 }, Icon: "🏆"},
	{Key: "Half Million", Title: "Half Million", Description: "Lifted 500,000+ lbs total", Type: models.MilestoneVolume, Permanent: true,
		Achieved: func(s AggregateStats) bool { return s.TotalVolume >= 500_000 }, Icon: "💪"},
	{Key: "Three-Quarter Million", Title: "Three-Quarter Million", Description: "Lifted 750,000+ lbs total", Type: models.MilestoneVolume, Permanent: true,
		Achieved: func(s AggregateStats) bool { return s.TotalVolume >= 750_000 }, Icon: "🔥"},
	{Key: "Million Pound Club", Title: "Million Pound Club", Description: "Lifted 1,000,000+ lbs total", Type: models.MilestoneVolume, Permanent: true,
		Achieved: func(s AggregateStats) bool { return s.TotalVolume >= 1_000_000 }, Icon: "💪"},
	{Key: "1.5 Million Club", Title: "1.5 Million Club", Description: "Lifted 1,500,000+ lbs total", Type: models.MilestoneVolume, Permanent: true,
		Achieved: func(s AggregateStats) bool { return s.TotalVolume >= 1_500_000 }, Icon: "🏆"},

	{Key: "On Track (8 in 30)", Title: "On Track", Description: "8+ workouts in 30 days", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedLast30Days >= 8 }, Icon: "📆"},
	{Key: "Dedicated (12 in 30)", Title: "Dedicated", Description: "12+ workouts in 30 days", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedLast30Days >= 12 }, Icon: "🔥"},
	{Key: "Relentless (16 in 30)", Title: "Relentless", Description: "16+ workouts in 30 days", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedLast30Days >= 16 }, Icon: "⚡"},
	{Key: "Consistency King", Title: "Consistency King", Description: "20+ workouts in 30 days", Type: models.MilestoneConsistency,
		Achieved: func(s AggregateStats) bool { return s.CompletedLast30Days >= 20 }, Icon: "👑"},
}

func ruleByKey(key string) (MilestoneRule, bool) {
	for _, r := range MilestoneRules {
		if r.Key == key {
			return r, true
		}
	}
	return MilestoneRule{}, false
}

func defaultIconFor(t models.MilestoneType) string {
	switch t {
	case models.MilestoneConsistency:
		return "🔥"
	case models.MilestoneVolume:
		return "💪"
	case models.MilestoneStrength:
		return "🏋️"
	case models.MilestoneEndurance:
		return "🏃"
	default:
		return "⭐"
	}
}

// MilestoneStore is the persisted milestone record set the engine reconciles
// against. The caller must serialize reconciliations per user (one
// transaction or critical section); the engine itself does not lock.
type MilestoneStore interface {
	ListMilestones(ctx context.Context, userID uuid.UUID) ([]models.Milestone, error)
	InsertMilestone(ctx context.Context, m models.Milestone) error
	UpdateMilestone(ctx context.Context, m models.Milestone) error
	DeleteMilestone(ctx context.Context, id uuid.UUID) error
}

// MilestoneAward is a reconciled milestone decorated with rule display
// metadata, falling back to stored values when the rule no longer exists.
type MilestoneAward struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Icon         string               `json:"icon"`
	Type         models.MilestoneType `json:"type"`
	AchievedDate time.Time            `json:"achieved_date"`
}

// ReconcileMilestones evaluates every rule against the snapshot and brings
// the stored rows in line: rows whose key matches no rule are deleted
// (schema drift), duplicate rows per key are pruned keeping the first,
// newly-satisfied rules are inserted with today's date, satisfied rules with
// drifted description/type are updated in place (the achieved date never
// changes), and unsatisfied non-permanent rules lose their row. Running it
// twice with unchanged stats performs zero writes on the second call.
func ReconcileMilestones(ctx context.Context, store MilestoneStore, userID uuid.UUID, stats AggregateStats, now time.Time) ([]MilestoneAward, error) {
	existing, err := store.ListMilestones(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := make(map[string]models.Milestone)
	for _, m := range existing {
		if _, known := ruleByKey(m.Title); !known {
			if err := store.DeleteMilestone(ctx, m.ID); err != nil {
				return nil, err
			}
			continue
		}
		if _, dup := active[m.Title]; dup {
			if err := store.DeleteMilestone(ctx, m.ID); err != nil {
				return nil, err
			}
			continue
		}
		active[m.Title] = m
	}

	today := DayOf(now)
	for _, rule := range MilestoneRules {
		achieved := rule.Achieved(stats)
		stored, ok := active[rule.Key]

		switch {
		case achieved && !ok:
			m := models.Milestone{
				ID:           uuid.New(),
				UserID:       userID,
				Title:        rule.Key,
				Description:  rule.Description,
				AchievedDate: today,
				Type:         rule.Type,
			}
			if err := store.InsertMilestone(ctx, m); err != nil {
				return nil, err
			}
			active[rule.Key] = m
		case achieved:
			if stored.Description != rule.Description || stored.Type != rule.Type {
				stored.Description = rule.Description
				stored.Type = rule.Type
				if err := store.UpdateMilestone(ctx, stored); err != nil {
					return nil, err
				}
				active[rule.Key] = stored
			}
		case ok && !rule.Permanent:
			if err := store.DeleteMilestone(ctx, stored.ID); err != nil {
				return nil, err
			}
			delete(active, rule.Key)
		}
	}

	reconciled := make([]models.Milestone, 0, len(active))
	for _, m := range active {
		reconciled = append(reconciled, m)
	}
	sort.Slice(reconciled, func(i, j int) bool {
		if !reconciled[i].AchievedDate.Equal(reconciled[j].AchievedDate) {
			return reconciled[i].AchievedDate.After(reconciled[j].AchievedDate)
		}
		return reconciled[i].Title < reconciled[j].Title
	})

	awards := make([]MilestoneAward, 0, len(reconciled))
	for _, m := range reconciled {
		award := MilestoneAward{
			Title:        m.Title,
			Description:  m.Description,
			Icon:         defaultIconFor(m.Type),
			Type:         m.Type,
			AchievedDate: m.AchievedDate,
		}
		if rule, ok := ruleByKey(m.Title); ok {
			award.Title = rule.Title
			award.Description = rule.Description
			award.Icon = rule.Icon
		}
		awards = append(awards, award)
	}
	return awards, nil
}
