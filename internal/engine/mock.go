package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hsuan0717/health/internal/storage"
)

// SampleWeek is a deterministic generated week of entries, used by the
// seed command and as demo data for the dashboard.
type SampleWeek struct {
	Diet     []storage.DietEntry
	Exercise []storage.ExerciseEntry
	Sleep    []storage.SleepEntry
}

// GenerateSampleWeek produces seven days of plausible entries ending on
// the day before `end`. The same seed always yields the same week.
func GenerateSampleWeek(end time.Time, seed int64) SampleWeek {
	rng := rand.New(rand.NewSource(seed))
	var week SampleWeek

	for i := 7; i >= 1; i-- {
		day := entryDate(end).AddDate(0, 0, -i)

		week.Diet = append(week.Diet, storage.DietEntry{
			ID:            fmt.Sprintf("sample-diet-%s", day.Format("2006-01-02")),
			Date:          day,
			CalorieIntake: 1700 + rng.Intn(800),
			VegRatio:      0.2 + rng.Float64()*0.5,
			ProteinRatio:  0.15 + rng.Float64()*0.25,
			StarchRatio:   0.2 + rng.Float64()*0.3,
			SugaryDrinks:  rng.Intn(3),
			FriedFood:     rng.Intn(2),
		})

		week.Exercise = append(week.Exercise, storage.ExerciseEntry{
			ID:              fmt.Sprintf("sample-exercise-%s", day.Format("2006-01-02")),
			Date:            day,
			DailySteps:      4000 + rng.Intn(10000),
			ModerateMinutes: rng.Intn(60),
			SittingMinutes:  360 + rng.Intn(300),
		})

		bedHour := 22 + rng.Intn(3) // 22, 23, or 0 (next day)
		bedMinute := rng.Intn(60)
		if bedHour >= 24 {
			bedHour -= 24
		}
		bed := fmt.Sprintf("%02d:%02d", bedHour, bedMinute)
		wake := fmt.Sprintf("%02d:%02d", 6+rng.Intn(3), rng.Intn(60))
		week.Sleep = append(week.Sleep, storage.SleepEntry{
			ID:             fmt.Sprintf("sample-sleep-%s", day.Format("2006-01-02")),
			Date:           day,
			BedTime:        bed,
			WakeTime:       wake,
			Duration:       SleepHours(bed, wake),
			PhoneBeforeBed: rng.Intn(2) == 0,
		})
	}
	return week
}
