package models

import (
	"time"

	"github.com/google/uuid"
)

// MilestoneType categorizes a milestone for display and permanence rules.
type MilestoneType string

const (
	MilestoneVolume         MilestoneType = "VOLUME"
	MilestoneConsistency    MilestoneType = "CONSISTENCY"
	MilestoneStrength       MilestoneType = "STRENGTH"
	MilestoneEndurance      MilestoneType = "ENDURANCE"
	MilestonePersonalRecord MilestoneType = "PERSONAL_RECORD"
)

// Milestone is a persisted achievement row. Title doubles as the rule key;
// there must be at most one row per (user, title). AchievedDate is immutable
// once set: reconciliation may refresh description and type but never the
// date.
type Milestone struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"user_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	AchievedDate time.Time     `json:"achieved_date"`
	Type         MilestoneType `json:"type"`
}
