package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// TemplateProgressPoint is the max working weight achieved on one day for an
// exercise within a template.
type TemplateProgressPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Reps   *int      `json:"reps,omitempty"`
	Volume float64   `json:"volume"`
}

// TemplateExerciseStats is the per-exercise breakdown within a template.
type TemplateExerciseStats struct {
	ExerciseID      uuid.UUID               `json:"exercise_id"`
	ExerciseName    string                  `json:"exercise_name"`
	MuscleGroup     string                  `json:"muscle_group"`
	Sessions        int                     `json:"sessions"`
	Sets            int                     `json:"sets"`
	StartingWeight  float64                 `json:"starting_weight"`
	CurrentWeight   float64                 `json:"current_weight"`
	ProgressPercent float64                 `json:"progress_percent"`
	Volume          float64                 `json:"volume"`
	ProgressPoints  []TemplateProgressPoint `json:"progress_points"`
}

// TemplateAnalytics attributes in-range sets to a template via its exercise
// list and summarizes them.
type TemplateAnalytics struct {
	TemplateID          uuid.UUID               `json:"template_id"`
	TemplateName        string                  `json:"template_name"`
	TotalVolume         float64                 `json:"total_volume"`
	Sessions            int                     `json:"sessions"`
	AvgVolumePerSession float64                 `json:"avg_volume_per_session"`
	Trend               string                  `json:"trend"`
	TrendPercent        float64                 `json:"trend_percent"`
	FirstUsed           *time.Time              `json:"first_used,omitempty"`
	LastUsed            *time.Time              `json:"last_used,omitempty"`
	Exercises           []TemplateExerciseStats `json:"exercises"`
}

// BuildTemplateAnalytics computes template-level stats for every template
// that has at least one matching in-range set. The trend uses the half-split
// comparison keyed on distinct session dates (not weeks) and needs at least
// four of them, with ±5% thresholds.
func BuildTemplateAnalytics(in Input, templates []models.WorkoutTemplate, items []models.TemplateItem) []TemplateAnalytics {
	if len(templates) == 0 || len(in.Sessions) == 0 {
		return []TemplateAnalytics{}
	}

	sessions := in.sessionIndex()
	itemsByTemplate := make(map[uuid.UUID][]models.TemplateItem)
	for _, it := range items {
		itemsByTemplate[it.TemplateID] = append(itemsByTemplate[it.TemplateID], it)
	}

	analytics := make([]TemplateAnalytics, 0, len(templates))

	for _, tpl := range templates {
		tplItems := itemsByTemplate[tpl.ID]
		if len(tplItems) == 0 {
			continue
		}
		sort.Slice(tplItems, func(i, j int) bool { return tplItems[i].Position < tplItems[j].Position })

		exerciseIDs := make(map[uuid.UUID]struct{}, len(tplItems))
		orderedExercises := make([]uuid.UUID, 0, len(tplItems))
		for _, it := range tplItems {
			if _, seen := exerciseIDs[it.ExerciseID]; !seen {
				exerciseIDs[it.ExerciseID] = struct{}{}
				orderedExercises = append(orderedExercises, it.ExerciseID)
			}
		}

		var templateSets []models.WorkoutSet
		for _, ws := range in.Sets {
			if _, ok := exerciseIDs[ws.ExerciseID]; ok {
				templateSets = append(templateSets, ws)
			}
		}
		if len(templateSets) == 0 {
			continue
		}

		var totalVolume float64
		relevantSessions := make(map[uuid.UUID]struct{})
		for _, ws := range templateSets {
			relevantSessions[ws.SessionID] = struct{}{}
			if v, ok := mainSetVolume(ws); ok {
				totalVolume += v
			}
		}

		sessionDates := make([]time.Time, 0, len(relevantSessions))
		for sid := range relevantSessions {
			if s, ok := sessions[sid]; ok {
				sessionDates = append(sessionDates, DayOf(s.StartedAt))
			}
		}
		sort.Slice(sessionDates, func(i, j int) bool { return sessionDates[i].Before(sessionDates[j]) })

		avgVolumePerSession := 0.0
		if len(relevantSessions) > 0 {
			avgVolumePerSession = totalVolume / float64(len(relevantSessions))
		}

		trend, trendPercent := templateTrend(templateSets, sessions, sessionDates)

		var firstUsed, lastUsed *time.Time
		if len(sessionDates) > 0 {
			f, l := sessionDates[0], sessionDates[len(sessionDates)-1]
			firstUsed, lastUsed = &f, &l
		}

		exerciseStats := make([]TemplateExerciseStats, 0, len(orderedExercises))
		for _, exerciseID := range orderedExercises {
			if stats, ok := templateExerciseStats(in, sessions, templateSets, exerciseID); ok {
				exerciseStats = append(exerciseStats, stats)
			}
		}

		analytics = append(analytics, TemplateAnalytics{
			TemplateID:          tpl.ID,
			TemplateName:        tpl.Name,
			TotalVolume:         totalVolume,
			Sessions:            len(relevantSessions),
			AvgVolumePerSession: round2(avgVolumePerSession),
			Trend:               trend,
			TrendPercent:        round1(trendPercent),
			FirstUsed:           firstUsed,
			LastUsed:            lastUsed,
			Exercises:           exerciseStats,
		})
	}

	return analytics
}

// templateTrend half-splits the sorted distinct-session dates and compares
// average per-date volume between the halves. Fewer than four dates is
// always stable at 0%.
func templateTrend(templateSets []models.WorkoutSet, sessions map[uuid.UUID]models.WorkoutSession, sessionDates []time.Time) (string, float64) {
	if len(sessionDates) < 4 {
		return TrendStable, 0
	}

	mid := len(sessionDates) / 2
	firstDates := dateSet(sessionDates[:mid])
	secondDates := dateSet(sessionDates[mid:])

	var firstVolume, secondVolume float64
	for _, ws := range templateSets {
		v, ok := mainSetVolume(ws)
		if !ok {
			continue
		}
		s, ok := sessions[ws.SessionID]
		if !ok {
			continue
		}
		day := DayOf(s.StartedAt)
		if _, ok := firstDates[day]; ok {
			firstVolume += v
		}
		if _, ok := secondDates[day]; ok {
			secondVolume += v
		}
	}

	firstAvg := firstVolume / float64(mid)
	secondAvg := secondVolume / float64(len(sessionDates)-mid)
	if firstAvg <= 0 {
		return TrendStable, 0
	}

	percent := (secondAvg - firstAvg) / firstAvg * 100
	switch {
	case percent > 5:
		return TrendIncreasing, percent
	case percent < -5:
		return TrendDecreasing, percent
	default:
		return TrendStable, percent
	}
}

func dateSet(dates []time.Time) map[time.Time]struct{} {
	out := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		out[d] = struct{}{}
	}
	return out
}

// templateExerciseStats summarizes one exercise's main sets within a
// template. Returns false when the exercise is unresolvable or has no main
// sets in range.
func templateExerciseStats(in Input, sessions map[uuid.UUID]models.WorkoutSession, templateSets []models.WorkoutSet, exerciseID uuid.UUID) (TemplateExerciseStats, bool) {
	exercise, ok := in.Exercises[exerciseID]
	if !ok {
		return TemplateExerciseStats{}, false
	}

	var exerciseSets []models.WorkoutSet
	for _, ws := range templateSets {
		if ws.ExerciseID == exerciseID && isMainSet(ws) {
			exerciseSets = append(exerciseSets, ws)
		}
	}
	if len(exerciseSets) == 0 {
		return TemplateExerciseStats{}, false
	}

	sort.SliceStable(exerciseSets, func(i, j int) bool {
		si, oki := sessions[exerciseSets[i].SessionID]
		sj, okj := sessions[exerciseSets[j].SessionID]
		if !oki || !okj {
			return false
		}
		return si.StartedAt.Before(sj.StartedAt)
	})

	exerciseSessions := make(map[uuid.UUID]struct{})
	var volume float64
	for _, ws := range exerciseSets {
		exerciseSessions[ws.SessionID] = struct{}{}
		if v, ok := setVolume(ws); ok {
			volume += v
		}
	}

	var validSets []models.WorkoutSet
	for _, ws := range exerciseSets {
		if ws.Weight != nil {
			validSets = append(validSets, ws)
		}
	}

	var startingWeight, currentWeight, progressPercent float64
	if len(validSets) > 0 {
		startingWeight = *validSets[0].Weight
		currentWeight = *validSets[len(validSets)-1].Weight
		if startingWeight > 0 {
			progressPercent = (currentWeight - startingWeight) / startingWeight * 100
		}
	}

	// Daily max-weight series.
	maxByDate := make(map[time.Time]models.WorkoutSet)
	for _, ws := range validSets {
		s, ok := sessions[ws.SessionID]
		if !ok {
			continue
		}
		day := DayOf(s.StartedAt)
		if best, ok := maxByDate[day]; !ok || *ws.Weight > *best.Weight {
			maxByDate[day] = ws
		}
	}
	days := make([]time.Time, 0, len(maxByDate))
	for d := range maxByDate {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	points := make([]TemplateProgressPoint, 0, len(days))
	for _, d := range days {
		ws := maxByDate[d]
		v, _ := setVolume(ws)
		points = append(points, TemplateProgressPoint{Date: d, Weight: *ws.Weight, Reps: ws.Reps, Volume: v})
	}

	return TemplateExerciseStats{
		ExerciseID:      exerciseID,
		ExerciseName:    exercise.Name,
		MuscleGroup:     exercise.MuscleGroup,
		Sessions:        len(exerciseSessions),
		Sets:            len(exerciseSets),
		StartingWeight:  startingWeight,
		CurrentWeight:   currentWeight,
		ProgressPercent: round1(progressPercent),
		Volume:          volume,
		ProgressPoints:  points,
	}, true
}
