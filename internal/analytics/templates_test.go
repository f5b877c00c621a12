package analytics

import (
	"testing"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

func templateFixture(user uuid.UUID, bench, squat models.Exercise) (models.WorkoutTemplate, []models.TemplateItem) {
	tpl := models.WorkoutTemplate{ID: uuid.New(), OwnerUserID: user, Name: "Push Day"}
	items := []models.TemplateItem{
		{ID: uuid.New(), TemplateID: tpl.ID, ExerciseID: squat.ID, Position: 2},
		{ID: uuid.New(), TemplateID: tpl.ID, ExerciseID: bench.ID, Position: 1},
	}
	return tpl, items
}

func TestBuildTemplateAnalyticsBasics(t *testing.T) {
	user := uuid.New()
	bench := benchPress()
	squat := models.Exercise{ID: uuid.New(), Name: "Back Squat", MuscleGroup: "LEGS"}
	tpl, items := templateFixture(user, bench, squat)

	s1 := finishedSession(user, day(2026, time.March, 2).Add(9*time.Hour))
	s2 := finishedSession(user, day(2026, time.March, 4).Add(9*time.Hour))

	in := Input{
		Sessions: []models.WorkoutSession{s1, s2},
		Sets: []models.WorkoutSet{
			workingSet(s1.ID, bench.ID, 100, 10), // 1000
			workingSet(s1.ID, squat.ID, 120, 5),  // 600
			workingSet(s2.ID, bench.ID, 105, 10), // 1050
		},
		Exercises: exerciseMap(bench, squat),
	}

	got := BuildTemplateAnalytics(in, []models.WorkoutTemplate{tpl}, items)
	if len(got) != 1 {
		t.Fatalf("templates = %d, want 1", len(got))
	}
	ta := got[0]

	if ta.TotalVolume != 2650 {
		t.Errorf("TotalVolume = %v, want 2650", ta.TotalVolume)
	}
	if ta.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", ta.Sessions)
	}
	if ta.AvgVolumePerSession != 1325 {
		t.Errorf("AvgVolumePerSession = %v, want 1325", ta.AvgVolumePerSession)
	}
	// Two distinct dates: always stable.
	if ta.Trend != TrendStable || ta.TrendPercent != 0 {
		t.Errorf("trend = %q %v, want stable 0", ta.Trend, ta.TrendPercent)
	}
	if ta.FirstUsed == nil || !ta.FirstUsed.Equal(day(2026, time.March, 2)) {
		t.Errorf("FirstUsed = %v, want 2026-03-02", ta.FirstUsed)
	}
	if ta.LastUsed == nil || !ta.LastUsed.Equal(day(2026, time.March, 4)) {
		t.Errorf("LastUsed = %v, want 2026-03-04", ta.LastUsed)
	}

	// Exercises follow item position order, bench first.
	if len(ta.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(ta.Exercises))
	}
	if ta.Exercises[0].ExerciseName != "Bench Press" || ta.Exercises[1].ExerciseName != "Back Squat" {
		t.Errorf("exercise order = %q, %q", ta.Exercises[0].ExerciseName, ta.Exercises[1].ExerciseName)
	}

	benchStats := ta.Exercises[0]
	if benchStats.StartingWeight != 100 || benchStats.CurrentWeight != 105 {
		t.Errorf("bench weights = %v -> %v, want 100 -> 105", benchStats.StartingWeight, benchStats.CurrentWeight)
	}
	if benchStats.ProgressPercent != 5 {
		t.Errorf("bench ProgressPercent = %v, want 5", benchStats.ProgressPercent)
	}
	if len(benchStats.ProgressPoints) != 2 {
		t.Errorf("bench progress points = %d, want 2 (one per day)", len(benchStats.ProgressPoints))
	}
}

func TestBuildTemplateAnalyticsVolumeCountsMainSetsOnly(t *testing.T) {
	user := uuid.New()
	bench := benchPress()
	squat := models.Exercise{ID: uuid.New(), Name: "Back Squat", MuscleGroup: "LEGS"}
	tpl, items := templateFixture(user, bench, squat)

	s1 := finishedSession(user, day(2026, time.March, 2).Add(9*time.Hour))
	in := Input{
		Sessions: []models.WorkoutSession{s1},
		Sets: []models.WorkoutSet{
			workingSet(s1.ID, bench.ID, 100, 10), // 1000
			warmupSet(s1.ID, bench.ID, 60, 10),
			dropSet(s1.ID, bench.ID, 50, 10, 1),
		},
		Exercises: exerciseMap(bench, squat),
	}

	got := BuildTemplateAnalytics(in, []models.WorkoutTemplate{tpl}, items)
	if len(got) != 1 {
		t.Fatalf("templates = %d, want 1", len(got))
	}
	if got[0].TotalVolume != 1000 {
		t.Errorf("TotalVolume = %v, want 1000 (warmup and drop-set continuation excluded)", got[0].TotalVolume)
	}
	if got[0].AvgVolumePerSession != 1000 {
		t.Errorf("AvgVolumePerSession = %v, want 1000", got[0].AvgVolumePerSession)
	}
}

func TestBuildTemplateAnalyticsTrendNeedsFourDates(t *testing.T) {
	user := uuid.New()
	bench := benchPress()
	tpl := models.WorkoutTemplate{ID: uuid.New(), OwnerUserID: user, Name: "Bench Only"}
	items := []models.TemplateItem{{ID: uuid.New(), TemplateID: tpl.ID, ExerciseID: bench.ID, Position: 1}}

	// Four dates, volumes 1000, 1000, 1500, 1500: second half +50%.
	volumes := []float64{100, 100, 150, 150}
	var sessions []models.WorkoutSession
	var sets []models.WorkoutSet
	for i, w := range volumes {
		s := finishedSession(user, day(2026, time.March, 2+2*i).Add(9*time.Hour))
		sessions = append(sessions, s)
		sets = append(sets, workingSet(s.ID, bench.ID, w, 10))
	}

	in := Input{Sessions: sessions, Sets: sets, Exercises: exerciseMap(bench)}
	got := BuildTemplateAnalytics(in, []models.WorkoutTemplate{tpl}, items)
	if len(got) != 1 {
		t.Fatalf("templates = %d, want 1", len(got))
	}
	if got[0].Trend != TrendIncreasing {
		t.Errorf("trend = %q, want %q", got[0].Trend, TrendIncreasing)
	}
	if got[0].TrendPercent != 50 {
		t.Errorf("TrendPercent = %v, want 50", got[0].TrendPercent)
	}
}

func TestBuildTemplateAnalyticsSkipsUnusedTemplate(t *testing.T) {
	user := uuid.New()
	bench := benchPress()
	row := models.Exercise{ID: uuid.New(), Name: "Barbell Row", MuscleGroup: "BACK"}
	tpl := models.WorkoutTemplate{ID: uuid.New(), OwnerUserID: user, Name: "Pull Day"}
	items := []models.TemplateItem{{ID: uuid.New(), TemplateID: tpl.ID, ExerciseID: row.ID, Position: 1}}

	s := finishedSession(user, day(2026, time.March, 2))
	in := Input{
		Sessions:  []models.WorkoutSession{s},
		Sets:      []models.WorkoutSet{workingSet(s.ID, bench.ID, 100, 10)},
		Exercises: exerciseMap(bench, row),
	}

	got := BuildTemplateAnalytics(in, []models.WorkoutTemplate{tpl}, items)
	if len(got) != 0 {
		t.Errorf("templates = %d, want 0 (no matching sets)", len(got))
	}
}

func TestBuildTemplateAnalyticsEmptyInputs(t *testing.T) {
	if got := BuildTemplateAnalytics(Input{}, nil, nil); got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}
