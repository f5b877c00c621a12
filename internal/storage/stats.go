package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DataStats holds aggregate statistics about a user's stored data.
type DataStats struct {
	TotalSessions  int64             `json:"total_sessions"`
	TotalSets      int64             `json:"total_sets"`
	TotalTemplates int64             `json:"total_templates"`
	EarliestData   *time.Time        `json:"earliest_data"`
	LatestData     *time.Time        `json:"latest_data"`
	SetsByMuscle   []MuscleGroupStat `json:"sets_by_muscle_group"`
}

// MuscleGroupStat holds set totals for a single muscle group.
type MuscleGroupStat struct {
	MuscleGroup string `json:"muscle_group"`
	Sets        int64  `json:"sets"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID uuid.UUID) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(started_at), MAX(started_at)
		 FROM workout_sessions WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSessions, &stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sets ws
		 JOIN workout_sessions s ON s.id = ws.session_id
		 WHERE s.user_id = $1`, userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_templates WHERE owner_user_id = $1`, userID,
	).Scan(&stats.TotalTemplates)
	if err != nil {
		return nil, fmt.Errorf("counting templates: %w", err)
	}

	// Sets by muscle group
	rows, err := db.Pool.Query(ctx,
		`SELECT e.muscle_group, COUNT(*)
		 FROM workout_sets ws
		 JOIN workout_sessions s ON s.id = ws.session_id
		 JOIN exercises e ON e.id = ws.exercise_id
		 WHERE s.user_id = $1
		 GROUP BY e.muscle_group
		 ORDER BY COUNT(*) DESC, e.muscle_group`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sets by muscle group: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m MuscleGroupStat
		if err := rows.Scan(&m.MuscleGroup, &m.Sets); err != nil {
			return nil, fmt.Errorf("scanning muscle group stat: %w", err)
		}
		stats.SetsByMuscle = append(stats.SetsByMuscle, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
