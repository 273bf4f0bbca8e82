package engine

type Category string

const (
	CategoryDiet     Category = "diet"
	CategoryExercise Category = "exercise"
	CategorySleep    Category = "sleep"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryDiet, CategoryExercise, CategorySleep:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// AdviceItem is a prioritized recommendation derived from a window of
// entries. Advice is recomputed from scratch on every input change and
// never stored.
type AdviceItem struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

type Challenge struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Current   int    `json:"current"`
	Target    int    `json:"target"`
	Completed bool   `json:"completed"`
}

// GamificationState is the derived score snapshot. It is recomputed
// wholesale from the full entry history; nothing in it is incremental.
type GamificationState struct {
	TotalPoints         int         `json:"total_points"`
	Level               int         `json:"level"`
	ProgressToNextLevel int         `json:"progress_to_next_level"`
	Badges              []Badge     `json:"badges"`
	Challenges          []Challenge `json:"challenges"`
}
