package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// InsertSets batch-inserts workout sets. Returns count inserted.
func (db *DB) InsertSets(ctx context.Context, rows []models.WorkoutSet) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO workout_sets (id, session_id, exercise_id, weight, reps,
		warmup, group_id, group_type, group_order, set_number, exercise_order) VALUES `
	args := make([]any, 0, len(rows)*11)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 11
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11,
		))
		args = append(args, r.ID, r.SessionID, r.ExerciseID, r.Weight, r.Reps,
			r.Warmup, r.GroupID, r.GroupType, r.GroupOrder, r.SetNumber, r.ExerciseOrder)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting workout sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QuerySetsForSessions retrieves every set belonging to the given sessions,
// ordered the way they were performed.
func (db *DB) QuerySetsForSessions(ctx context.Context, sessionIDs []uuid.UUID) ([]models.WorkoutSet, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, session_id, exercise_id, weight, reps,
		 warmup, group_id, group_type, group_order, set_number, exercise_order
		 FROM workout_sets
		 WHERE session_id = ANY($1)
		 ORDER BY session_id, exercise_order ASC NULLS LAST, set_number ASC NULLS LAST`,
		sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSet
	for rows.Next() {
		var r models.WorkoutSet
		if err := rows.Scan(&r.ID, &r.SessionID, &r.ExerciseID, &r.Weight, &r.Reps,
			&r.Warmup, &r.GroupID, &r.GroupType, &r.GroupOrder, &r.SetNumber, &r.ExerciseOrder); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
