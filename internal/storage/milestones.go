package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MilestoneTx is a per-user milestone view bound to one transaction. The
// transaction holds an advisory lock on the user, so concurrent
// reconciliations for the same user serialize instead of racing.
type MilestoneTx struct {
	tx pgx.Tx
}

func (t *MilestoneTx) ListMilestones(ctx context.Context, userID uuid.UUID) ([]models.Milestone, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT id, user_id, title, description, achieved_date, type
		 FROM milestones
		 WHERE user_id = $1
		 ORDER BY achieved_date ASC, title ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying milestones: %w", err)
	}
	defer rows.Close()

	var result []models.Milestone
	for rows.Next() {
		var m models.Milestone
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Description, &m.AchievedDate, &m.Type); err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (t *MilestoneTx) InsertMilestone(ctx context.Context, m models.Milestone) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO milestones (id, user_id, title, description, achieved_date, type)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.UserID, m.Title, m.Description, m.AchievedDate, m.Type)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (t *MilestoneTx) UpdateMilestone(ctx context.Context, m models.Milestone) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE milestones SET description = $2, type = $3 WHERE id = $1`,
		m.ID, m.Description, m.Type)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return nil
}

func (t *MilestoneTx) DeleteMilestone(ctx context.Context, id uuid.UUID) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM milestones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return nil
}

// WithMilestoneLock runs fn inside a transaction that holds a per-user
// advisory lock, committing on success and rolling back on error.
func (db *DB) WithMilestoneLock(ctx context.Context, userID uuid.UUID, fn func(*MilestoneTx) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning milestone transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock key is the low 64 bits of the user UUID; released at commit or
	// rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(lockKey(userID))); err != nil {
		return fmt.Errorf("acquiring milestone lock: %w", err)
	}

	if err := fn(&MilestoneTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func lockKey(id uuid.UUID) uint64 {
	var k uint64
	for _, v := range id[8:] {
		k = k<<8 | uint64(v)
	}
	return k
}
