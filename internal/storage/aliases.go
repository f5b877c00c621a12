package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ResolveExerciseAlias maps an imported exercise name to a catalog exercise
// ID. Returns uuid.Nil and false when no enabled alias exists.
func (db *DB) ResolveExerciseAlias(ctx context.Context, alias string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	var enabled bool
	err := db.Pool.QueryRow(ctx,
		`SELECT exercise_id, enabled FROM exercise_aliases WHERE alias = $1`,
		alias).Scan(&id, &enabled)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("checking exercise alias: %w", err)
	}
	if !enabled {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// ExerciseAlias represents an entry in the import alias table.
type ExerciseAlias struct {
	Alias      string    `json:"alias"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	Enabled    bool      `json:"enabled"`
}

// GetExerciseAliases returns all import aliases.
func (db *DB) GetExerciseAliases(ctx context.Context) ([]ExerciseAlias, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT alias, exercise_id, enabled FROM exercise_aliases ORDER BY alias`)
	if err != nil {
		return nil, fmt.Errorf("querying exercise aliases: %w", err)
	}
	defer rows.Close()

	var result []ExerciseAlias
	for rows.Next() {
		var a ExerciseAlias
		if err := rows.Scan(&a.Alias, &a.ExerciseID, &a.Enabled); err != nil {
			return nil, fmt.Errorf("scanning exercise alias: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// UpsertExerciseAlias inserts or toggles an import alias.
func (db *DB) UpsertExerciseAlias(ctx context.Context, a ExerciseAlias) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercise_aliases (alias, exercise_id, enabled)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (alias) DO UPDATE SET exercise_id = EXCLUDED.exercise_id, enabled = EXCLUDED.enabled`,
		a.Alias, a.ExerciseID, a.Enabled)
	if err != nil {
		return fmt.Errorf("upserting exercise alias: %w", err)
	}
	return nil
}
