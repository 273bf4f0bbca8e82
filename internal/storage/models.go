package storage

import (
	"errors"
	"time"
)

// ErrNotFound reports a lookup or delete that matched no row.
var ErrNotFound = errors.New("not found")

// DietEntry is one day's recorded diet observation. Ratios are fractions
// of the day's intake and are not required to sum to 1.
type DietEntry struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	CalorieIntake int       `json:"calorie_intake"`
	VegRatio      float64   `json:"veg_ratio"`
	ProteinRatio  float64   `json:"protein_ratio"`
	StarchRatio   float64   `json:"starch_ratio"`
	SugaryDrinks  int       `json:"sugary_drinks"`
	FriedFood     int       `json:"fried_food"`
}

type ExerciseEntry struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	DailySteps      int       `json:"daily_steps"`
	ModerateMinutes int       `json:"moderate_minutes"`
	SittingMinutes  int       `json:"sitting_minutes"`
}

// SleepEntry records one night. BedTime and WakeTime are clock times in
// HH:MM form; Duration is in hours and may span midnight.
type SleepEntry struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	BedTime        string    `json:"bed_time"`
	WakeTime       string    `json:"wake_time"`
	Duration       float64   `json:"duration"`
	PhoneBeforeBed bool      `json:"phone_before_bed"`
}
