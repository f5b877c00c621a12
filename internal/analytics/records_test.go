package analytics

import (
	"testing"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

func TestPersonalRecordsEmptyInput(t *testing.T) {
	records := PersonalRecords(Input{}, day(2026, 3, 12))
	if records == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

// TestPersonalRecordsDominantSet verifies that one set winning every category
// yields a single Max Weight record, not three records.
func TestPersonalRecordsDominantSet(t *testing.T) {
	user := uuid.New()
	bench := benchPress()
	sess := finishedSession(user, day(2026, 3, 2))

	in := Input{
		Sessions: []models.WorkoutSession{sess},
		Sets: []models.WorkoutSet{
			workingSet(sess.ID, bench.ID, 100, 10),
			workingSet(sess.ID, bench.ID, 80, 8),
		},
		Exercises: exerciseMap(bench),
	}

	records := PersonalRecords(in, day(2026, 3, 12))
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.RecordType != RecordMaxWeight {
		t.Errorf("record_type = %q, want %q", r.RecordType, RecordMaxWeight)
	}
	if *r.Weight != 100 || *r.Reps != 10 {
		t.Errorf("record = %v x %v, want 100 x 10", *r.Weight, *r.Reps)
	}
	if want := day(2026, 3, 2); !r.AchievedDate.Equal(want) {
		t.Errorf("achieved_date = %v, want %v", r.AchievedDate, want)
	}
}

// TestPersonalRecordsDistinctWinners verifies all three categories appear when
// different sets win them.
func TestPersonalRecordsDistinctWinners(t *testing.T) {
	user := uuid.New()
	bench := benchPress()
	sess := finishedSession(user, day(2026, 3, 2))

	// 100x5 wins weight, 60x15 wins reps, 90x12 = 1080 wins single-set volume.
	in := Input{
		Sessions: []models.WorkoutSession{sess},
		Sets: []models.WorkoutSet{
			workingSet(sess.ID, bench.ID, 100, 5),
			workingSet(sess.ID, bench.ID, 60, 15),
			workingSet(sess.ID, bench.ID, 90, 12),
		},
		Exercises: exerciseMap(bench),
	}

	records := PersonalRecords(in, day(2026, 3, 12))
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	byType := make(map[string]PersonalRecord, len(records))
	for _, r := range records {
		byType[r.RecordType] = r
	}

	if r, ok := byType[RecordMaxWeight]; !ok || *r.Weight != 100 {
		t.Errorf("max weight record = %+v, want weight 100", r)
	}
	if r, ok := byType[RecordMaxReps]; !ok || *r.Reps != 15 {
		t.Errorf("max reps record = %+v, want reps 15", r)
	}
	if r, ok := byType[RecordMaxSetVolume]; !ok || *r.Weight != 90 || *r.Reps != 12 {
		t.Errorf("max volume record = %+v, want 90 x 12", r)
	}
}

// TestPersonalRecordsUnknownExerciseSkipped verifies sets referencing an
// exercise missing from the catalog produce no records.
func TestPersonalRecordsUnknownExerciseSkipped(t *testing.T) {
	user := uuid.New()
	sess := finishedSession(user, day(2026, 3, 2))

	in := Input{
		Sessions:  []models.WorkoutSession{sess},
		Sets:      []models.WorkoutSet{workingSet(sess.ID, uuid.New(), 100, 10)},
		Exercises: map[uuid.UUID]models.Exercise{},
	}

	if records := PersonalRecords(in, day(2026, 3, 12)); len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

// TestPersonalRecordsSortedByDateDescending verifies the newest record comes
// first.
func TestPersonalRecordsSortedByDateDescending(t *testing.T) {
	user := uuid.New()
	bench := benchPress()
	squat := models.Exercise{ID: uuid.New(), Name: "Squat", MuscleGroup: "LEGS"}

	older := finishedSession(user, day(2026, 2, 2))
	newer := finishedSession(user, day(2026, 3, 2))

	in := Input{
		Sessions: []models.WorkoutSession{older, newer},
		Sets: []models.WorkoutSet{
			workingSet(older.ID, bench.ID, 100, 10),
			workingSet(newer.ID, squat.ID, 140, 5),
		},
		Exercises: exerciseMap(bench, squat),
	}

	records := PersonalRecords(in, day(2026, 3, 12))
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ExerciseName != "Squat" {
		t.Errorf("first record = %q, want Squat (newest)", records[0].ExerciseName)
	}
	if !records[0].AchievedDate.After(records[1].AchievedDate) {
		t.Error("records not sorted by achieved date descending")
	}
}

// TestPersonalRecordsWeightlessSets verifies bodyweight-style sets (reps but
// no weight) still produce a reps record.
func TestPersonalRecordsWeightlessSets(t *testing.T) {
	user := uuid.New()
	pullup := models.Exercise{ID: uuid.New(), Name: "Pull Up", MuscleGroup: "BACK"}
	sess := finishedSession(user, day(2026, 3, 2))

	set := models.WorkoutSet{
		ID:         uuid.New(),
		SessionID:  sess.ID,
		ExerciseID: pullup.ID,
		Reps:       iptr(12),
	}

	in := Input{
		Sessions:  []models.WorkoutSession{sess},
		Sets:      []models.WorkoutSet{set},
		Exercises: exerciseMap(pullup),
	}

	records := PersonalRecords(in, day(2026, 3, 12))
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].RecordType != RecordMaxReps {
		t.Errorf("record_type = %q, want %q", records[0].RecordType, RecordMaxReps)
	}
	if records[0].Weight != nil {
		t.Errorf("weight = %v, want nil", *records[0].Weight)
	}
}
