package engine

import (
	"fmt"
	"math"

	"github.com/hsuan0717/health/internal/storage"
)

// Advice rule thresholds. The sugary-drink average and the 23:30
// late-night cutoff are deliberate as-is values: the drink threshold is
// tuned so four or more drink days out of seven trip the rule.
const (
	minAvgVegRatio        = 0.5
	minAvgProteinRatio    = 0.25
	maxAvgSugaryDrinks    = 0.57
	minAvgDailySteps      = 8000.0
	minWeeklyModerateMin  = 180
	maxAvgSittingMinutes  = 480.0
	maxLateNights         = 2
	minAvgSleepHours      = 7.5
	maxPhoneBeforeBedDays = 3
)

// AnalyzeDiet maps a window of diet entries to advice, in fixed rule
// order. Empty input yields no advice.
func AnalyzeDiet(entries []storage.DietEntry) []AdviceItem {
	if len(entries) == 0 {
		return nil
	}

	var vegSum, proteinSum, drinkSum float64
	for _, e := range entries {
		vegSum += e.VegRatio
		proteinSum += e.ProteinRatio
		drinkSum += float64(e.SugaryDrinks)
	}
	n := float64(len(entries))

	var out []AdviceItem
	if vegSum/n < minAvgVegRatio || proteinSum/n < minAvgProteinRatio {
		out = append(out, AdviceItem{
			Category:    CategoryDiet,
			Title:       "Unbalanced nutrition",
			Description: "Your vegetable or protein intake is low this week. Aim for at least half vegetables and a quarter protein per meal.",
			Priority:    PriorityHigh,
		})
	}
	if drinkSum/n > maxAvgSugaryDrinks {
		out = append(out, AdviceItem{
			Category:    CategoryDiet,
			Title:       "Excess sugary drinks",
			Description: "You are averaging more than one sugary drink every other day. Try swapping some for water or unsweetened tea.",
			Priority:    PriorityMedium,
		})
	}
	return out
}

// AnalyzeExercise maps a window of exercise entries to advice, in fixed
// rule order. Empty input yields no advice.
func AnalyzeExercise(entries []storage.ExerciseEntry) []AdviceItem {
	if len(entries) == 0 {
		return nil
	}

	var stepSum, sittingSum float64
	moderateTotal := 0
	for _, e := range entries {
		stepSum += float64(e.DailySteps)
		sittingSum += float64(e.SittingMinutes)
		moderateTotal += e.ModerateMinutes
	}
	n := float64(len(entries))

	var out []AdviceItem
	if avg := stepSum / n; avg < minAvgDailySteps {
		out = append(out, AdviceItem{
			Category:    CategoryExercise,
			Title:       "Insufficient activity",
			Description: fmt.Sprintf("You averaged %d steps per day. Try to reach 8000 daily steps.", int(math.Round(avg))),
			Priority:    PriorityMedium,
		})
	}
	if moderateTotal < minWeeklyModerateMin {
		out = append(out, AdviceItem{
			Category:    CategoryExercise,
			Title:       "Insufficient moderate exercise",
			Description: "You logged under 180 minutes of moderate exercise this week. Schedule a few brisk walks or workouts.",
			Priority:    PriorityHigh,
		})
	}
	if sittingSum/n > maxAvgSittingMinutes {
		out = append(out, AdviceItem{
			Category:    CategoryExercise,
			Title:       "Excessive sitting",
			Description: "You are sitting more than eight hours a day on average. Stand up and stretch every hour.",
			Priority:    PriorityLow,
		})
	}
	return out
}

// AnalyzeSleep maps a window of sleep entries to advice, in fixed rule
// order. Empty input yields no advice.
func AnalyzeSleep(entries []storage.SleepEntry) []AdviceItem {
	if len(entries) == 0 {
		return nil
	}

	lateNights := 0
	phoneDays := 0
	var durationSum float64
	for _, e := range entries {
		if isLateNight(e.BedTime) {
			lateNights++
		}
		if e.PhoneBeforeBed {
			phoneDays++
		}
		durationSum += e.Duration
	}
	n := float64(len(entries))

	var out []AdviceItem
	if lateNights > maxLateNights {
		out = append(out, AdviceItem{
			Category:    CategorySleep,
			Title:       "Frequent late nights",
			Description: "You went to bed after 23:30 more than twice this week. A consistent earlier bedtime improves sleep quality.",
			Priority:    PriorityHigh,
		})
	}
	if avg := durationSum / n; avg < minAvgSleepHours {
		out = append(out, AdviceItem{
			Category:    CategorySleep,
			Title:       "Insufficient sleep duration",
			Description: fmt.Sprintf("You averaged %.1f hours of sleep. Aim for at least 7.5 hours per night.", avg),
			Priority:    PriorityHigh,
		})
	}
	if phoneDays > maxPhoneBeforeBedDays {
		out = append(out, AdviceItem{
			Category:    CategorySleep,
			Title:       "Pre-bed phone use",
			Description: "You used your phone before bed on most nights. Screens before sleep delay falling asleep.",
			Priority:    PriorityMedium,
		})
	}
	return out
}
