package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a workout session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionFinished   SessionStatus = "FINISHED"
)

// SetGroupType marks a set as part of a grouped sequence.
type SetGroupType string

const (
	GroupSuperset SetGroupType = "SUPERSET"
	GroupDropSet  SetGroupType = "DROP_SET"
)

// WorkoutSession is one logged workout. StartedAt determines which calendar
// day and week every set of the session is attributed to.
type WorkoutSession struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"user_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
	Status     SessionStatus `json:"status"`
}

// WorkoutSet is a single set within a session. Weight and reps are optional;
// volume (weight × reps) is defined only when both are present. Sets carry no
// timestamp of their own.
type WorkoutSet struct {
	ID            uuid.UUID     `json:"id"`
	SessionID     uuid.UUID     `json:"session_id"`
	ExerciseID    uuid.UUID     `json:"exercise_id"`
	Weight        *float64      `json:"weight,omitempty"`
	Reps          *int          `json:"reps,omitempty"`
	Warmup        bool          `json:"warmup"`
	GroupID       *uuid.UUID    `json:"group_id,omitempty"`
	GroupType     *SetGroupType `json:"group_type,omitempty"`
	GroupOrder    *int          `json:"group_order,omitempty"`
	SetNumber     *int          `json:"set_number,omitempty"`
	ExerciseOrder *int          `json:"exercise_order,omitempty"`
}

// Exercise is read-only reference data used to label analytics results.
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscle_group"`
}

// WorkoutTemplate is a named, user-owned list of exercises.
type WorkoutTemplate struct {
	ID          uuid.UUID `json:"id"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	Name        string    `json:"name"`
	CreatedOn   time.Time `json:"created_on"`
}

// TemplateItem is one exercise reference within a template.
type TemplateItem struct {
	ID         uuid.UUID `json:"id"`
	TemplateID uuid.UUID `json:"template_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	Position   int       `json:"position"`
}
