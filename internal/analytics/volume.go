package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Trend labels for weekly volume classification.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// WeeklyVolume is the aggregated volume and set count for one ISO week,
// keyed by its Monday.
type WeeklyVolume struct {
	WeekStart time.Time `json:"week_start"`
	Volume    float64   `json:"volume"`
	Sets      int       `json:"sets"`
}

// ExerciseVolumeTrend is the per-exercise volume analysis result.
type ExerciseVolumeTrend struct {
	ExerciseID          uuid.UUID      `json:"exercise_id"`
	ExerciseName        string         `json:"exercise_name"`
	MuscleGroup         string         `json:"muscle_group"`
	TotalVolume         float64        `json:"total_volume"`
	TotalSets           int            `json:"total_sets"`
	AvgVolumePerSession float64        `json:"avg_volume_per_session"`
	Trend               string         `json:"trend"`
	Weekly              []WeeklyVolume `json:"weekly"`
}

// ExerciseVolumeTrends aggregates main, non-warmup sets per exercise into
// weekly volume buckets and classifies the trend by comparing first-half and
// second-half weekly averages (±10% thresholds). Results are sorted by total
// volume descending. Sets referencing unknown exercises are skipped.
func ExerciseVolumeTrends(in Input) []ExerciseVolumeTrend {
	if len(in.Sessions) == 0 {
		return []ExerciseVolumeTrend{}
	}

	sessions := in.sessionIndex()
	trends := make([]ExerciseVolumeTrend, 0)

	for exerciseID, sets := range in.setsByExercise() {
		exercise, ok := in.Exercises[exerciseID]
		if !ok {
			continue
		}

		weeklyVolume := make(map[time.Time]float64)
		weeklySets := make(map[time.Time]int)
		var totalVolume float64
		totalSets := 0
		uniqueSessions := make(map[uuid.UUID]struct{})

		for _, ws := range sets {
			uniqueSessions[ws.SessionID] = struct{}{}

			session, ok := sessions[ws.SessionID]
			if !ok {
				continue
			}
			if !isMainSet(ws) {
				continue
			}

			totalSets++
			week := MondayOf(session.StartedAt)
			weeklySets[week]++
			if v, ok := setVolume(ws); ok {
				weeklyVolume[week] += v
				totalVolume += v
			}
		}

		avgVolumePerSession := 0.0
		if len(uniqueSessions) > 0 {
			avgVolumePerSession = totalVolume / float64(len(uniqueSessions))
		}

		weeks := make([]time.Time, 0, len(weeklySets))
		for w := range weeklySets {
			weeks = append(weeks, w)
		}
		sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

		volumes := make([]float64, len(weeks))
		weekly := make([]WeeklyVolume, len(weeks))
		for i, w := range weeks {
			volumes[i] = weeklyVolume[w]
			weekly[i] = WeeklyVolume{WeekStart: w, Volume: weeklyVolume[w], Sets: weeklySets[w]}
		}

		trends = append(trends, ExerciseVolumeTrend{
			ExerciseID:          exerciseID,
			ExerciseName:        exercise.Name,
			MuscleGroup:         exercise.MuscleGroup,
			TotalVolume:         totalVolume,
			TotalSets:           totalSets,
			AvgVolumePerSession: round2(avgVolumePerSession),
			Trend:               classifyVolumeTrend(volumes),
			Weekly:              weekly,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].TotalVolume != trends[j].TotalVolume {
			return trends[i].TotalVolume > trends[j].TotalVolume
		}
		return trends[i].ExerciseName < trends[j].ExerciseName
	})
	return trends
}

// classifyVolumeTrend splits the ordered weekly volumes at len/2 and compares
// the half averages. A zero first-half average is always stable.
func classifyVolumeTrend(volumes []float64) string {
	if len(volumes) < 2 {
		return TrendStable
	}
	first, second := halfAverages(volumes)
	if first <= 0 {
		return TrendStable
	}
	switch {
	case second > first*1.1:
		return TrendIncreasing
	case second < first*0.9:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// halfAverages returns the mean of each half of vals, split at len/2.
func halfAverages(vals []float64) (first, second float64) {
	mid := len(vals) / 2
	if mid == 0 || len(vals)-mid == 0 {
		return 0, 0
	}
	for _, v := range vals[:mid] {
		first += v
	}
	for _, v := range vals[mid:] {
		second += v
	}
	return first / float64(mid), second / float64(len(vals)-mid)
}
