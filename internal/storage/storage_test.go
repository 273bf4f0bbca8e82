package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSleepRepoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSleepRepo(db)

	in := SleepEntry{
		ID:             "s1",
		Date:           time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		BedTime:        "23:31",
		WakeTime:       "07:00",
		Duration:       7.4833,
		PhoneBeforeBed: true,
	}
	if err := repo.Insert(ctx, in); err != nil {
		t.Fatalf("insert: %v", err)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d entries, want 1", len(all))
	}
	got := all[0]
	if got.BedTime != "23:31" || !got.PhoneBeforeBed || got.Duration != 7.4833 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Date.Equal(in.Date) {
		t.Fatalf("date = %v, want %v", got.Date, in.Date)
	}
}

func TestListSinceOrdersAndFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExerciseRepo(db)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"c", "a", "b"} {
		e := ExerciseEntry{ID: id, Date: base.AddDate(0, 0, (2-i)*3), DailySteps: 1000 * i}
		if err := repo.Insert(ctx, e); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	got, err := repo.ListSince(ctx, base.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if !got[0].Date.Before(got[1].Date) {
		t.Fatalf("entries not in ascending date order: %v, %v", got[0].Date, got[1].Date)
	}
}

func TestDietRepoDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDietRepo(db)

	e := DietEntry{ID: "d1", Date: time.Now().UTC()}
	if err := repo.Insert(ctx, e); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Delete(ctx, "d1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting a missing entry: got %v, want ErrNotFound", err)
	}
}

func TestLayoutRepo(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewLayoutRepo(db)

	doc, err := repo.Get(ctx, "dashboard")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if doc != "" {
		t.Fatalf("missing layout returned %q", doc)
	}

	if err := repo.Put(ctx, "dashboard", `{"widgets":[]}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "dashboard", `{"widgets":[{"kind":"score"}]}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	doc, err = repo.Get(ctx, "dashboard")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc != `{"widgets":[{"kind":"score"}]}` {
		t.Fatalf("doc = %q", doc)
	}

	if err := repo.Delete(ctx, "dashboard"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		diet := NewDietRepo(db).WithTx(tx)
		if err := diet.Insert(ctx, DietEntry{ID: "tx-1", Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)}); err != nil {
			return err
		}
		if err := NewLayoutRepo(tx).Put(ctx, "x", "{}"); err != nil {
			return err
		}
		return sql.ErrConnDone
	})
	if err == nil {
		t.Fatalf("expected error from tx body")
	}

	entries, err := NewDietRepo(db).ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rollback did not discard the diet insert")
	}
	doc, err := NewLayoutRepo(db).Get(ctx, "x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc != "" {
		t.Fatalf("rollback did not discard the layout insert")
	}
}
