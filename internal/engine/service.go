package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hsuan0717/health/internal/storage"
)

// DefaultWindowDays is the rolling advice window.
const DefaultWindowDays = 7

// Service wires the pure engines to the entry repositories. All derived
// state (advice, gamification) is recomputed on demand; the service
// itself holds nothing but handles.
type Service struct {
	db       *sql.DB
	diet     *storage.DietRepo
	exercise *storage.ExerciseRepo
	sleep    *storage.SleepRepo
	layouts  *storage.LayoutRepo
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:       db,
		diet:     storage.NewDietRepo(db),
		exercise: storage.NewExerciseRepo(db),
		sleep:    storage.NewSleepRepo(db),
		layouts:  storage.NewLayoutRepo(db),
	}
}

func (s *Service) DietRepo() *storage.DietRepo         { return s.diet }
func (s *Service) ExerciseRepo() *storage.ExerciseRepo { return s.exercise }
func (s *Service) SleepRepo() *storage.SleepRepo       { return s.sleep }
func (s *Service) LayoutRepo() *storage.LayoutRepo     { return s.layouts }

type LogDietInput struct {
	Date          time.Time `json:"date"`
	CalorieIntake int       `json:"calorie_intake"`
	VegRatio      float64   `json:"veg_ratio"`
	ProteinRatio  float64   `json:"protein_ratio"`
	StarchRatio   float64   `json:"starch_ratio"`
	SugaryDrinks  int       `json:"sugary_drinks"`
	FriedFood     int       `json:"fried_food"`
}

func (in LogDietInput) validate() error {
	if in.CalorieIntake < 0 {
		return ValidationError{Field: "calorie intake", Reason: "must not be negative"}
	}
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"veg ratio", in.VegRatio},
		{"protein ratio", in.ProteinRatio},
		{"starch ratio", in.StarchRatio},
	} {
		if r.value < 0 || r.value > 1 {
			return ValidationError{Field: r.name, Reason: "must be between 0 and 1"}
		}
	}
	if in.SugaryDrinks < 0 {
		return ValidationError{Field: "sugary drinks", Reason: "must not be negative"}
	}
	if in.FriedFood < 0 {
		return ValidationError{Field: "fried food", Reason: "must not be negative"}
	}
	return nil
}

func (s *Service) LogDiet(ctx context.Context, in LogDietInput) (*storage.DietEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e := storage.DietEntry{
		ID:            uuid.NewString(),
		Date:          entryDate(in.Date),
		CalorieIntake: in.CalorieIntake,
		VegRatio:      in.VegRatio,
		ProteinRatio:  in.ProteinRatio,
		StarchRatio:   in.StarchRatio,
		SugaryDrinks:  in.SugaryDrinks,
		FriedFood:     in.FriedFood,
	}
	if err := s.diet.Insert(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

type LogExerciseInput struct {
	Date            time.Time `json:"date"`
	DailySteps      int       `json:"daily_steps"`
	ModerateMinutes int       `json:"moderate_minutes"`
	SittingMinutes  int       `json:"sitting_minutes"`
}

func (in LogExerciseInput) validate() error {
	if in.DailySteps < 0 {
		return ValidationError{Field: "daily steps", Reason: "must not be negative"}
	}
	if in.ModerateMinutes < 0 {
		return ValidationError{Field: "moderate minutes", Reason: "must not be negative"}
	}
	if in.SittingMinutes < 0 {
		return ValidationError{Field: "sitting minutes", Reason: "must not be negative"}
	}
	return nil
}

func (s *Service) LogExercise(ctx context.Context, in LogExerciseInput) (*storage.ExerciseEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e := storage.ExerciseEntry{
		ID:              uuid.NewString(),
		Date:            entryDate(in.Date),
		DailySteps:      in.DailySteps,
		ModerateMinutes: in.ModerateMinutes,
		SittingMinutes:  in.SittingMinutes,
	}
	if err := s.exercise.Insert(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

type LogSleepInput struct {
	Date           time.Time `json:"date"`
	BedTime        string    `json:"bed_time"`
	WakeTime       string    `json:"wake_time"`
	Duration       float64   `json:"duration"` // hours; computed from the clock times when zero
	PhoneBeforeBed bool      `json:"phone_before_bed"`
}

func (s *Service) LogSleep(ctx context.Context, in LogSleepInput) (*storage.SleepEntry, error) {
	if _, _, err := ParseClock(in.BedTime); err != nil {
		return nil, ValidationError{Field: "bed time", Reason: "expected HH:MM"}
	}
	if _, _, err := ParseClock(in.WakeTime); err != nil {
		return nil, ValidationError{Field: "wake time", Reason: "expected HH:MM"}
	}
	duration := in.Duration
	if duration == 0 {
		duration = SleepHours(in.BedTime, in.WakeTime)
	}
	if duration < 0 || duration > 24 {
		return nil, ValidationError{Field: "duration", Reason: "must be between 0 and 24 hours"}
	}

	e := storage.SleepEntry{
		ID:             uuid.NewString(),
		Date:           entryDate(in.Date),
		BedTime:        in.BedTime,
		WakeTime:       in.WakeTime,
		Duration:       duration,
		PhoneBeforeBed: in.PhoneBeforeBed,
	}
	if err := s.sleep.Insert(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Advice recomputes the full advice list over the rolling window, in
// diet, exercise, sleep order.
func (s *Service) Advice(ctx context.Context, windowDays int) ([]AdviceItem, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	since := entryDate(time.Now().UTC()).AddDate(0, 0, -(windowDays - 1))

	diet, err := s.diet.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}
	exercise, err := s.exercise.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}
	sleep, err := s.sleep.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	var out []AdviceItem
	out = append(out, AnalyzeDiet(diet)...)
	out = append(out, AnalyzeExercise(exercise)...)
	out = append(out, AnalyzeSleep(sleep)...)
	return out, nil
}

// Gamification recomputes the score snapshot over the full history.
func (s *Service) Gamification(ctx context.Context) (GamificationState, error) {
	diet, err := s.diet.ListAll(ctx)
	if err != nil {
		return GamificationState{}, err
	}
	exercise, err := s.exercise.ListAll(ctx)
	if err != nil {
		return GamificationState{}, err
	}
	sleep, err := s.sleep.ListAll(ctx)
	if err != nil {
		return GamificationState{}, err
	}
	return CalculateGamificationState(diet, exercise, sleep), nil
}

// SeedWeek inserts a generated week in one transaction, so a failed
// insert never leaves a partial week behind.
func (s *Service) SeedWeek(ctx context.Context, week SampleWeek) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		diet := s.diet.WithTx(tx)
		for _, e := range week.Diet {
			if err := diet.Insert(ctx, e); err != nil {
				return err
			}
		}
		exercise := s.exercise.WithTx(tx)
		for _, e := range week.Exercise {
			if err := exercise.Insert(ctx, e); err != nil {
				return err
			}
		}
		sleep := s.sleep.WithTx(tx)
		for _, e := range week.Sleep {
			if err := sleep.Insert(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// entryDate truncates to the calendar day in UTC.
func entryDate(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SleepHours computes the duration in hours between two clock times,
// crossing midnight when the wake time is not after the bedtime. Both
// inputs must already be validated.
func SleepHours(bedTime, wakeTime string) float64 {
	bh, bm, err := ParseClock(bedTime)
	if err != nil {
		return 0
	}
	wh, wm, err := ParseClock(wakeTime)
	if err != nil {
		return 0
	}
	minutes := (wh*60 + wm) - (bh*60 + bm)
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60
}
