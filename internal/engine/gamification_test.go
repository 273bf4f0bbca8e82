package engine

import (
	"reflect"
	"testing"

	"github.com/hsuan0717/health/internal/storage"
)

func TestGamificationEmptyInput(t *testing.T) {
	got := CalculateGamificationState(nil, nil, nil)

	if got.TotalPoints != 0 || got.Level != 1 || got.ProgressToNextLevel != 0 {
		t.Fatalf("empty input: points=%d level=%d progress=%d, want 0/1/0",
			got.TotalPoints, got.Level, got.ProgressToNextLevel)
	}
	if len(got.Badges) != 4 {
		t.Fatalf("badge catalogue has %d entries, want 4", len(got.Badges))
	}
	for _, b := range got.Badges {
		if b.Unlocked {
			t.Fatalf("badge %s unlocked on empty input", b.ID)
		}
	}
	if len(got.Challenges) != 3 {
		t.Fatalf("challenge catalogue has %d entries, want 3", len(got.Challenges))
	}
	for _, c := range got.Challenges {
		if c.Current != 0 || c.Completed {
			t.Fatalf("challenge %s = %d/%d completed=%v on empty input", c.ID, c.Current, c.Target, c.Completed)
		}
	}
}

func TestGamificationSingleHighStepDay(t *testing.T) {
	exercise := []storage.ExerciseEntry{{Date: day(0), DailySteps: 12000}}

	got := CalculateGamificationState(nil, exercise, nil)
	// 15 for >=8000 plus the stacking 10 for >=12000.
	if got.TotalPoints != 25 {
		t.Fatalf("points = %d, want 25", got.TotalPoints)
	}
	if got.Level != 1 {
		t.Fatalf("level = %d, want 1", got.Level)
	}
	if got.ProgressToNextLevel != 12 {
		t.Fatalf("progress = %d, want 12", got.ProgressToNextLevel)
	}
}

func TestGamificationDietPoints(t *testing.T) {
	diet := []storage.DietEntry{
		{Date: day(0), VegRatio: 0.3, ProteinRatio: 0.2, SugaryDrinks: 0, FriedFood: 0}, // 20+10+10
		{Date: day(1), VegRatio: 0.1, ProteinRatio: 0.1, SugaryDrinks: 2, FriedFood: 1}, // 0
	}
	got := CalculateGamificationState(diet, nil, nil)
	if got.TotalPoints != 40 {
		t.Fatalf("points = %d, want 40", got.TotalPoints)
	}
}

func TestGamificationSleepPoints(t *testing.T) {
	sleep := []storage.SleepEntry{
		{Date: day(0), Duration: 7.0, PhoneBeforeBed: false},  // 20+15
		{Date: day(1), Duration: 9.0, PhoneBeforeBed: true},   // 20
		{Date: day(2), Duration: 9.01, PhoneBeforeBed: false}, // 15
		{Date: day(3), Duration: 6.99, PhoneBeforeBed: true},  // 0
	}
	got := CalculateGamificationState(nil, nil, sleep)
	if got.TotalPoints != 70 {
		t.Fatalf("points = %d, want 70", got.TotalPoints)
	}
}

func TestLevelDerivation(t *testing.T) {
	cases := []struct {
		points   int
		level    int
		progress int
	}{
		{0, 1, 0},
		{190, 1, 95},
		{200, 2, 0},
		{450, 3, 25},
	}
	for _, c := range cases {
		// Points arrive 10 at a time via sugar-free diet entries.
		var diet []storage.DietEntry
		for i := 0; i < c.points/10; i++ {
			diet = append(diet, storage.DietEntry{Date: day(i), SugaryDrinks: 0, FriedFood: 1, VegRatio: 0.1})
		}
		got := CalculateGamificationState(diet, nil, nil)
		if got.TotalPoints != c.points {
			t.Fatalf("points = %d, want %d", got.TotalPoints, c.points)
		}
		if got.Level != c.level || got.ProgressToNextLevel != c.progress {
			t.Fatalf("points %d: level=%d progress=%d, want %d/%d",
				c.points, got.Level, got.ProgressToNextLevel, c.level, c.progress)
		}
	}
}

func badgeByID(t *testing.T, state GamificationState, id string) Badge {
	t.Helper()
	for _, b := range state.Badges {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("badge %s not in catalogue", id)
	return Badge{}
}

func TestBadgeFirstStep(t *testing.T) {
	state := CalculateGamificationState(nil, []storage.ExerciseEntry{{Date: day(0)}}, nil)
	if !badgeByID(t, state, "first_step").Unlocked {
		t.Fatalf("first_step locked despite an exercise entry")
	}
}

func TestBadgeStepMaster(t *testing.T) {
	state := CalculateGamificationState(nil, []storage.ExerciseEntry{
		{Date: day(0), DailySteps: 9999},
		{Date: day(1), DailySteps: 10000},
	}, nil)
	if !badgeByID(t, state, "step_master").Unlocked {
		t.Fatalf("step_master locked despite a 10000-step day")
	}
}

func TestBadgeSleepStreak(t *testing.T) {
	durations := []float64{6, 6, 6, 8, 8, 8, 8}
	var sleep []storage.SleepEntry
	// Insert out of date order; the streak is computed after sorting.
	for i := len(durations) - 1; i >= 0; i-- {
		sleep = append(sleep, storage.SleepEntry{Date: day(i), Duration: durations[i]})
	}
	state := CalculateGamificationState(nil, nil, sleep)
	if !badgeByID(t, state, "sleep_streak").Unlocked {
		t.Fatalf("sleep_streak locked; run of 4 nights >= 7h expected")
	}

	broken := []float64{8, 8, 6, 8, 8, 6, 8}
	sleep = sleep[:0]
	for i, d := range broken {
		sleep = append(sleep, storage.SleepEntry{Date: day(i), Duration: d})
	}
	state = CalculateGamificationState(nil, nil, sleep)
	if badgeByID(t, state, "sleep_streak").Unlocked {
		t.Fatalf("sleep_streak unlocked with a max run of 2")
	}
}

func TestBadgeCleanEater(t *testing.T) {
	var diet []storage.DietEntry
	for i := 0; i < 3; i++ {
		diet = append(diet, storage.DietEntry{Date: day(i), SugaryDrinks: 0})
	}
	state := CalculateGamificationState(diet, nil, nil)
	if !badgeByID(t, state, "clean_eater").Unlocked {
		t.Fatalf("clean_eater locked with 3 sugar-free days")
	}
}

func TestChallenges(t *testing.T) {
	var exercise []storage.ExerciseEntry
	for i := 0; i < 5; i++ {
		exercise = append(exercise, storage.ExerciseEntry{Date: day(i), DailySteps: 10000, ModerateMinutes: 30})
	}
	diet := []storage.DietEntry{
		{Date: day(0), VegRatio: 0.3, ProteinRatio: 0.2},
		{Date: day(1), VegRatio: 0.29, ProteinRatio: 0.5},
	}
	state := CalculateGamificationState(diet, exercise, nil)

	want := map[string]Challenge{
		"weekly_steps":  {Current: 50000, Completed: true},
		"active_week":   {Current: 150, Completed: true},
		"balanced_diet": {Current: 1, Completed: false},
	}
	for _, c := range state.Challenges {
		w, ok := want[c.ID]
		if !ok {
			t.Fatalf("unexpected challenge %s", c.ID)
		}
		if c.Current != w.Current || c.Completed != w.Completed {
			t.Fatalf("challenge %s = %d completed=%v, want %d/%v", c.ID, c.Current, c.Completed, w.Current, w.Completed)
		}
	}
}

func TestGamificationIdempotent(t *testing.T) {
	week := GenerateSampleWeek(day(7), 42)
	a := CalculateGamificationState(week.Diet, week.Exercise, week.Sleep)
	b := CalculateGamificationState(week.Diet, week.Exercise, week.Sleep)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical input produced different state:\n%+v\n%+v", a, b)
	}
}

func TestGamificationDoesNotMutateInput(t *testing.T) {
	sleep := []storage.SleepEntry{
		{Date: day(2), Duration: 8},
		{Date: day(0), Duration: 8},
		{Date: day(1), Duration: 8},
	}
	orig := make([]storage.SleepEntry, len(sleep))
	copy(orig, sleep)

	CalculateGamificationState(nil, nil, sleep)
	if !reflect.DeepEqual(sleep, orig) {
		t.Fatalf("input slice reordered: %v", sleep)
	}
}
