package engine

import (
	"sort"

	"github.com/hsuan0717/health/internal/storage"
)

// Points awarded per entry. Each bonus is evaluated independently; the
// two step bonuses stack.
const (
	pointsBalancedMeal  = 20
	pointsNoSugaryDrink = 10
	pointsNoFriedFood   = 10
	pointsSteps8k       = 15
	pointsSteps12k      = 10
	pointsModerate30    = 20
	pointsGoodSleep     = 20
	pointsNoPhone       = 15

	// PointsPerLevel is the flat level width: level = points/200 + 1.
	PointsPerLevel = 200
)

// Challenge targets for the current input window.
const (
	targetWeeklySteps   = 50000
	targetActiveMinutes = 150
	targetBalancedMeals = 5
)

func balancedDiet(e storage.DietEntry) bool {
	return e.VegRatio >= 0.3 && e.ProteinRatio >= 0.2
}

// CalculateGamificationState derives the full score snapshot from the
// three entry histories. The entries need not be aligned by date; empty
// input yields zero points, level 1 and everything locked.
func CalculateGamificationState(diet []storage.DietEntry, exercise []storage.ExerciseEntry, sleep []storage.SleepEntry) GamificationState {
	points := 0

	for _, e := range diet {
		if balancedDiet(e) {
			points += pointsBalancedMeal
		}
		if e.SugaryDrinks == 0 {
			points += pointsNoSugaryDrink
		}
		if e.FriedFood == 0 {
			points += pointsNoFriedFood
		}
	}
	for _, e := range exercise {
		if e.DailySteps >= 8000 {
			points += pointsSteps8k
		}
		if e.DailySteps >= 12000 {
			points += pointsSteps12k
		}
		if e.ModerateMinutes >= 30 {
			points += pointsModerate30
		}
	}
	for _, e := range sleep {
		if e.Duration >= 7.0 && e.Duration <= 9.0 {
			points += pointsGoodSleep
		}
		if !e.PhoneBeforeBed {
			points += pointsNoPhone
		}
	}

	return GamificationState{
		TotalPoints:         points,
		Level:               points/PointsPerLevel + 1,
		ProgressToNextLevel: (points % PointsPerLevel) * 100 / PointsPerLevel,
		Badges:              evaluateBadges(diet, exercise, sleep),
		Challenges:          evaluateChallenges(diet, exercise),
	}
}

// evaluateBadges builds the fixed badge catalogue. IDs must stay stable
// because clients key unlock animations off them.
func evaluateBadges(diet []storage.DietEntry, exercise []storage.ExerciseEntry, sleep []storage.SleepEntry) []Badge {
	anySteps10k := false
	for _, e := range exercise {
		if e.DailySteps >= 10000 {
			anySteps10k = true
			break
		}
	}

	cleanDays := 0
	for _, e := range diet {
		if e.SugaryDrinks == 0 {
			cleanDays++
		}
	}

	return []Badge{
		{
			ID:          "first_step",
			Name:        "First Step",
			Description: "Log your first exercise entry",
			Icon:        "👟",
			Unlocked:    len(exercise) > 0,
		},
		{
			ID:          "step_master",
			Name:        "Step Master",
			Description: "Walk 10000 steps in a single day",
			Icon:        "🏃",
			Unlocked:    anySteps10k,
		},
		{
			ID:          "sleep_streak",
			Name:        "Sleep Streak",
			Description: "Three nights in a row with 7+ hours of sleep",
			Icon:        "🌙",
			Unlocked:    maxSleepStreak(sleep) >= 3,
		},
		{
			ID:          "clean_eater",
			Name:        "Clean Eater",
			Description: "Three sugar-free days",
			Icon:        "🥗",
			Unlocked:    cleanDays >= 3,
		},
	}
}

// maxSleepStreak returns the longest run of entries with 7+ hours of
// sleep, contiguous by position after sorting by date. Calendar gaps do
// not break a streak.
func maxSleepStreak(sleep []storage.SleepEntry) int {
	sorted := make([]storage.SleepEntry, len(sleep))
	copy(sorted, sleep)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	best, run := 0, 0
	for _, e := range sorted {
		if e.Duration >= 7 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// evaluateChallenges builds the fixed challenge catalogue. The whole
// input window is treated as "this week".
func evaluateChallenges(diet []storage.DietEntry, exercise []storage.ExerciseEntry) []Challenge {
	steps := 0
	moderate := 0
	for _, e := range exercise {
		steps += e.DailySteps
		moderate += e.ModerateMinutes
	}
	balancedMeals := 0
	for _, e := range diet {
		if balancedDiet(e) {
			balancedMeals++
		}
	}

	return []Challenge{
		{ID: "weekly_steps", Name: "Weekly Steps", Current: steps, Target: targetWeeklySteps, Completed: steps >= targetWeeklySteps},
		{ID: "active_week", Name: "Active Week", Current: moderate, Target: targetActiveMinutes, Completed: moderate >= targetActiveMinutes},
		{ID: "balanced_diet", Name: "Balanced Diet", Current: balancedMeals, Target: targetBalancedMeals, Completed: balancedMeals >= targetBalancedMeals},
	}
}
