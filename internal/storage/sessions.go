package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// InsertSession inserts a workout session row. Returns true if inserted,
// false if the row already existed.
func (db *DB) InsertSession(ctx context.Context, s models.WorkoutSession) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, started_at, finished_at, status)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT DO NOTHING`,
		s.ID, s.UserID, s.StartedAt, s.FinishedAt, s.Status)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuerySessions retrieves a user's sessions with started_at in [start, end),
// newest first.
func (db *DB) QuerySessions(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, started_at, finished_at, status
		 FROM workout_sessions
		 WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
		 ORDER BY started_at DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		var s models.WorkoutSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.FinishedAt, &s.Status); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetSession retrieves a single session by ID regardless of owner; the
// caller checks ownership. Returns ErrNotFound when no such session exists.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, started_at, finished_at, status
		 FROM workout_sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.StartedAt, &s.FinishedAt, &s.Status)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}
