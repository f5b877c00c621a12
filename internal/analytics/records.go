package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// Record category labels.
const (
	RecordMaxWeight    = "Max Weight"
	RecordMaxReps      = "Max Reps"
	RecordMaxSetVolume = "Max Volume (Single Set)"
)

// PersonalRecord is one best-set record for an exercise.
type PersonalRecord struct {
	ExerciseID   uuid.UUID `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	RecordType   string    `json:"record_type"`
	Weight       *float64  `json:"weight,omitempty"`
	Reps         *int      `json:"reps,omitempty"`
	AchievedDate time.Time `json:"achieved_date"`
}

// PersonalRecords extracts, per exercise over the user's entire supplied
// history, the single best set by weight, by reps, and by single-set volume.
// A set that already won an earlier category is not reported again, so one
// dominant set yields one record, not three. Results are sorted by achieved
// date descending.
func PersonalRecords(in Input, now time.Time) []PersonalRecord {
	if len(in.Sessions) == 0 {
		return []PersonalRecord{}
	}

	sessions := in.sessionIndex()
	records := make([]PersonalRecord, 0)

	achievedDate := func(ws models.WorkoutSet) time.Time {
		if s, ok := sessions[ws.SessionID]; ok {
			return DayOf(s.StartedAt)
		}
		return DayOf(now)
	}

	for exerciseID, sets := range in.setsByExercise() {
		exercise, ok := in.Exercises[exerciseID]
		if !ok {
			continue
		}

		var maxWeight, maxReps, maxVolume *models.WorkoutSet
		for i := range sets {
			ws := &sets[i]
			if ws.Weight != nil && (maxWeight == nil || *ws.Weight > *maxWeight.Weight) {
				maxWeight = ws
			}
			if ws.Reps != nil && (maxReps == nil || *ws.Reps > *maxReps.Reps) {
				maxReps = ws
			}
			if v, ok := setVolume(*ws); ok {
				if maxVolume == nil {
					maxVolume = ws
				} else if prev, _ := setVolume(*maxVolume); v > prev {
					maxVolume = ws
				}
			}
		}

		if maxWeight != nil {
			records = append(records, PersonalRecord{
				ExerciseID:   exerciseID,
				ExerciseName: exercise.Name,
				RecordType:   RecordMaxWeight,
				Weight:       maxWeight.Weight,
				Reps:         maxWeight.Reps,
				AchievedDate: achievedDate(*maxWeight),
			})
		}
		if maxReps != nil && maxReps != maxWeight {
			records = append(records, PersonalRecord{
				ExerciseID:   exerciseID,
				ExerciseName: exercise.Name,
				RecordType:   RecordMaxReps,
				Weight:       maxReps.Weight,
				Reps:         maxReps.Reps,
				AchievedDate: achievedDate(*maxReps),
			})
		}
		if maxVolume != nil && maxVolume != maxWeight && maxVolume != maxReps {
			records = append(records, PersonalRecord{
				ExerciseID:   exerciseID,
				ExerciseName: exercise.Name,
				RecordType:   RecordMaxSetVolume,
				Weight:       maxVolume.Weight,
				Reps:         maxVolume.Reps,
				AchievedDate: achievedDate(*maxVolume),
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].AchievedDate.Equal(records[j].AchievedDate) {
			return records[i].AchievedDate.After(records[j].AchievedDate)
		}
		return records[i].ExerciseName < records[j].ExerciseName
	})
	return records
}
