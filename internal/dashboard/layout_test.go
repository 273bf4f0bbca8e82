package dashboard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hsuan0717/health/internal/storage"
)

func newLayoutRepo(t *testing.T) *storage.LayoutRepo {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewLayoutRepo(db)
}

func TestParseLayoutDropsUnknownAndAppendsMissing(t *testing.T) {
	doc := `{"widgets":[{"kind":"advice","title":"Advice","visible":true},{"kind":"pie_chart","title":"??","visible":true},{"kind":"score","title":"Score","visible":false}]}`
	l, err := ParseLayout(doc)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if l.Widgets[0].Kind != WidgetAdvice || l.Widgets[1].Kind != WidgetScore {
		t.Fatalf("unexpected widget order: %+v", l.Widgets)
	}
	if len(l.Widgets) != len(DefaultLayout().Widgets) {
		t.Fatalf("missing kinds not appended: %+v", l.Widgets)
	}
	for _, w := range l.Widgets[2:] {
		if w.Visible {
			t.Fatalf("appended widget %s should be hidden", w.Kind)
		}
	}
}

func TestParseLayoutRejectsGarbage(t *testing.T) {
	for _, doc := range []string{"not json", `{"widgets":[]}`, `{"widgets":[{"kind":"bogus"}]}`} {
		if _, err := ParseLayout(doc); err == nil {
			t.Fatalf("ParseLayout(%q) succeeded, want error", doc)
		}
	}
}

func TestLoadLayoutFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	repo := newLayoutRepo(t)

	// Nothing stored yet.
	l := LoadLayout(ctx, repo)
	if len(l.Widgets) != len(DefaultLayout().Widgets) {
		t.Fatalf("expected default layout, got %+v", l)
	}

	// A corrupt stored document must not crash the dashboard.
	if err := repo.Put(ctx, LayoutName, "{{{"); err != nil {
		t.Fatalf("put: %v", err)
	}
	l = LoadLayout(ctx, repo)
	if len(l.Widgets) != len(DefaultLayout().Widgets) {
		t.Fatalf("expected default layout after corrupt doc, got %+v", l)
	}

	// A document whose widgets are all unknown is treated as corrupt too.
	if err := repo.Put(ctx, LayoutName, `{"widgets":[{"kind":"pie_chart","visible":true}]}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	l = LoadLayout(ctx, repo)
	for _, w := range l.Widgets {
		if !w.Visible {
			t.Fatalf("expected default layout after unknown-only doc, got %+v", l)
		}
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newLayoutRepo(t)

	l := DefaultLayout()
	l.Toggle(0)
	l.Move(1, 1)
	if err := SaveLayout(ctx, repo, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := LoadLayout(ctx, repo)
	if got.Widgets[0].Visible {
		t.Fatalf("toggled widget came back visible")
	}
	if got.Widgets[1].Kind != l.Widgets[1].Kind {
		t.Fatalf("move not persisted: %+v", got.Widgets)
	}
}

func TestLayoutMoveBounds(t *testing.T) {
	l := DefaultLayout()
	if l.Move(0, -1) {
		t.Fatalf("moved first widget up")
	}
	if l.Move(len(l.Widgets)-1, 1) {
		t.Fatalf("moved last widget down")
	}
	if !l.Move(0, 1) {
		t.Fatalf("legal move rejected")
	}
}
