package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hsuan0717/health/internal/storage"
)

// WidgetKind is the closed set of dashboard panels. Rendering dispatches
// on the kind; each kind is bound to one slice of derived or raw data.
type WidgetKind string

const (
	WidgetScore    WidgetKind = "score"
	WidgetAdvice   WidgetKind = "advice"
	WidgetDiet     WidgetKind = "diet"
	WidgetExercise WidgetKind = "exercise"
	WidgetSleep    WidgetKind = "sleep"
	WidgetReport   WidgetKind = "report"
)

func (k WidgetKind) IsValid() bool {
	switch k {
	case WidgetScore, WidgetAdvice, WidgetDiet, WidgetExercise, WidgetSleep, WidgetReport:
		return true
	default:
		return false
	}
}

type Widget struct {
	Kind    WidgetKind `json:"kind"`
	Title   string     `json:"title"`
	Visible bool       `json:"visible"`
}

// Layout is the persisted dashboard configuration: widget order and
// visibility. It is loaded once at startup and saved on every committed
// mutation.
type Layout struct {
	Widgets []Widget `json:"widgets"`
}

// LayoutName is the single document key in the layouts table.
const LayoutName = "dashboard"

func DefaultLayout() Layout {
	return Layout{Widgets: []Widget{
		{Kind: WidgetScore, Title: "Score", Visible: true},
		{Kind: WidgetAdvice, Title: "Advice", Visible: true},
		{Kind: WidgetDiet, Title: "Diet", Visible: true},
		{Kind: WidgetExercise, Title: "Exercise", Visible: true},
		{Kind: WidgetSleep, Title: "Sleep", Visible: true},
		{Kind: WidgetReport, Title: "Weekly Report", Visible: true},
	}}
}

// ParseLayout decodes a stored document. Unknown widget kinds are
// dropped; kinds missing from the document are appended hidden, so a
// layout saved by an older build keeps working.
func ParseLayout(doc string) (Layout, error) {
	var l Layout
	if err := json.Unmarshal([]byte(doc), &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}

	seen := map[WidgetKind]bool{}
	kept := l.Widgets[:0]
	for _, w := range l.Widgets {
		if !w.Kind.IsValid() || seen[w.Kind] {
			continue
		}
		seen[w.Kind] = true
		kept = append(kept, w)
	}
	l.Widgets = kept
	if len(l.Widgets) == 0 {
		return Layout{}, fmt.Errorf("parse layout: no widgets")
	}

	for _, w := range DefaultLayout().Widgets {
		if !seen[w.Kind] {
			w.Visible = false
			l.Widgets = append(l.Widgets, w)
		}
	}
	return l, nil
}

// LoadLayout returns the stored layout, falling back to the default when
// nothing is stored or the stored document does not parse.
func LoadLayout(ctx context.Context, repo *storage.LayoutRepo) Layout {
	doc, err := repo.Get(ctx, LayoutName)
	if err != nil || doc == "" {
		return DefaultLayout()
	}
	l, err := ParseLayout(doc)
	if err != nil {
		return DefaultLayout()
	}
	return l
}

// SaveLayout persists the layout document.
func SaveLayout(ctx context.Context, repo *storage.LayoutRepo, l Layout) error {
	doc, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	return repo.Put(ctx, LayoutName, string(doc))
}

// Toggle flips visibility of the widget at index i.
func (l *Layout) Toggle(i int) bool {
	if i < 0 || i >= len(l.Widgets) {
		return false
	}
	l.Widgets[i].Visible = !l.Widgets[i].Visible
	return true
}

// Move swaps the widget at index i with its neighbour at i+delta.
func (l *Layout) Move(i, delta int) bool {
	j := i + delta
	if i < 0 || i >= len(l.Widgets) || j < 0 || j >= len(l.Widgets) {
		return false
	}
	l.Widgets[i], l.Widgets[j] = l.Widgets[j], l.Widgets[i]
	return true
}
