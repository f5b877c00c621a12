package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// UpsertExercise inserts an exercise or refreshes its name and muscle group.
func (db *DB) UpsertExercise(ctx context.Context, e models.Exercise) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, muscle_group)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, muscle_group = EXCLUDED.muscle_group`,
		e.ID, e.Name, e.MuscleGroup)
	if err != nil {
		return fmt.Errorf("upserting exercise: %w", err)
	}
	return nil
}

// ExerciseByName looks up an exercise by exact name.
func (db *DB) ExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, muscle_group FROM exercises WHERE name = $1`, name).
		Scan(&e.ID, &e.Name, &e.MuscleGroup)
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &e, nil
}

// AllExercises retrieves the full exercise catalog keyed by ID.
func (db *DB) AllExercises(ctx context.Context) (map[uuid.UUID]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, muscle_group FROM exercises`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]models.Exercise)
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result[e.ID] = e
	}
	return result, rows.Err()
}
