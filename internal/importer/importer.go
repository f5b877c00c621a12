// Package importer ingests workout history exports. Imports are idempotent:
// session, set and exercise IDs are derived deterministically from their
// content, so re-running an import inserts nothing new.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/claude/liftstats/internal/storage"
	"github.com/google/uuid"
)

// importNamespace seeds the deterministic UUIDs for imported rows.
var importNamespace = uuid.MustParse("8f3c1a4e-6b2d-4f7a-9c0e-5d1b8a2f4c6e")

// Result holds the outcome of an import operation.
type Result struct {
	SessionsReceived int    `json:"sessions_received"`
	SessionsInserted int    `json:"sessions_inserted"`
	SetsReceived     int    `json:"sets_received"`
	SetsInserted     int64  `json:"sets_inserted"`
	SetsSkipped      int64  `json:"sets_skipped"`
	ExercisesCreated int    `json:"exercises_created"`
	Message          string `json:"message,omitempty"`
}

// Importer parses workout history exports and stores them.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
}

// New creates a new Importer.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// Ingest parses an export and stores its sessions and sets for the user.
func (imp *Importer) Ingest(ctx context.Context, r io.Reader, userID uuid.UUID) (*Result, error) {
	rows, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	result := &Result{SetsReceived: len(rows)}
	if len(rows) == 0 {
		result.Message = "no rows in export"
		return result, nil
	}

	sessions := groupSessions(rows)
	result.SessionsReceived = len(sessions)

	exerciseIDs := make(map[string]uuid.UUID)
	var sets []models.WorkoutSet

	for _, sess := range sessions {
		sessionID := sessionUUID(userID, sess.name, sess.date)
		session := models.WorkoutSession{
			ID:        sessionID,
			UserID:    userID,
			StartedAt: sess.date,
			Status:    models.SessionFinished,
		}
		if d, ok := parseDuration(sess.duration); ok {
			finished := sess.date.Add(d)
			session.FinishedAt = &finished
		}

		if !imp.dryRun {
			inserted, err := imp.db.InsertSession(ctx, session)
			if err != nil {
				return result, fmt.Errorf("inserting session %q: %w", sess.name, err)
			}
			if inserted {
				result.SessionsInserted++
			}
		} else {
			result.SessionsInserted++
		}

		for i, row := range sess.rows {
			exerciseID, err := imp.resolveExercise(ctx, row, exerciseIDs, result)
			if err != nil {
				return result, err
			}

			ws := models.WorkoutSet{
				ID:         setUUID(sessionID, row.Exercise, i),
				SessionID:  sessionID,
				ExerciseID: exerciseID,
				Weight:     row.Weight,
				Reps:       row.Reps,
				Warmup:     row.Warmup,
			}
			setNum := row.SetNumber
			ws.SetNumber = &setNum
			if row.GroupType != "" {
				gt := models.SetGroupType(row.GroupType)
				ws.GroupType = &gt
				ws.GroupOrder = row.GroupOrder
			}
			sets = append(sets, ws)
		}
	}

	if imp.dryRun {
		result.SetsInserted = int64(len(sets))
		return result, nil
	}

	inserted, err := imp.batchInsertSets(ctx, sets)
	if err != nil {
		return result, fmt.Errorf("inserting sets: %w", err)
	}
	result.SetsInserted = inserted
	result.SetsSkipped = int64(len(sets)) - inserted
	return result, nil
}

// resolveExercise maps an exercise name to a catalog ID: import alias first,
// then exact name, then a new deterministic catalog entry.
func (imp *Importer) resolveExercise(ctx context.Context, row Row, cache map[string]uuid.UUID, result *Result) (uuid.UUID, error) {
	if id, ok := cache[row.Exercise]; ok {
		return id, nil
	}

	if id, ok, err := imp.db.ResolveExerciseAlias(ctx, row.Exercise); err != nil {
		return uuid.Nil, fmt.Errorf("resolving alias %q: %w", row.Exercise, err)
	} else if ok {
		cache[row.Exercise] = id
		return id, nil
	}

	if e, err := imp.db.ExerciseByName(ctx, row.Exercise); err == nil {
		cache[row.Exercise] = e.ID
		return e.ID, nil
	}

	exercise := models.Exercise{
		ID:          exerciseUUID(row.Exercise),
		Name:        row.Exercise,
		MuscleGroup: row.MuscleGroup,
	}
	if !imp.dryRun {
		if err := imp.db.UpsertExercise(ctx, exercise); err != nil {
			return uuid.Nil, fmt.Errorf("creating exercise %q: %w", row.Exercise, err)
		}
	}
	imp.log.Info("created exercise", "name", exercise.Name, "muscle_group", exercise.MuscleGroup)
	result.ExercisesCreated++
	cache[row.Exercise] = exercise.ID
	return exercise.ID, nil
}

// batchInsertSets inserts sets in chunks to stay within PostgreSQL parameter
// limits. 11 params per row, max 65535 params, use 5000 rows per batch.
func (imp *Importer) batchInsertSets(ctx context.Context, rows []models.WorkoutSet) (int64, error) {
	const batchSize = 5000
	var total int64

	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		inserted, err := imp.db.InsertSets(ctx, rows[i:end])
		if err != nil {
			return total, err
		}
		total += inserted
	}
	return total, nil
}

type parsedSession struct {
	name     string
	date     time.Time
	duration string
	rows     []Row
}

// groupSessions buckets rows by (name, date), preserving row order within a
// session and ordering sessions chronologically.
func groupSessions(rows []Row) []parsedSession {
	index := make(map[string]int)
	var sessions []parsedSession
	for _, row := range rows {
		key := row.SessionName + "|" + row.SessionDate.Format(time.RFC3339)
		i, ok := index[key]
		if !ok {
			i = len(sessions)
			index[key] = i
			sessions = append(sessions, parsedSession{
				name:     row.SessionName,
				date:     row.SessionDate,
				duration: row.Duration,
			})
		}
		sessions[i].rows = append(sessions[i].rows, row)
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].date.Before(sessions[j].date) })
	return sessions
}

func sessionUUID(userID uuid.UUID, name string, date time.Time) uuid.UUID {
	return uuid.NewSHA1(importNamespace, []byte("session:"+userID.String()+":"+name+":"+date.Format(time.RFC3339)))
}

func setUUID(sessionID uuid.UUID, exercise string, ordinal int) uuid.UUID {
	return uuid.NewSHA1(sessionID, []byte(fmt.Sprintf("set:%s:%d", exercise, ordinal)))
}

func exerciseUUID(name string) uuid.UUID {
	return uuid.NewSHA1(importNamespace, []byte("exercise:"+name))
}
