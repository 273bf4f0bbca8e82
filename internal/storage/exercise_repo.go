package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type ExerciseRepo struct {
	db DBTX
}

func NewExerciseRepo(db DBTX) *ExerciseRepo {
	return &ExerciseRepo{db: db}
}

// WithTx returns a copy of the repo bound to tx.
func (r *ExerciseRepo) WithTx(tx *sql.Tx) *ExerciseRepo {
	return &ExerciseRepo{db: tx}
}

func (r *ExerciseRepo) Insert(ctx context.Context, e ExerciseEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exercise_entries (id, date, daily_steps, moderate_minutes, sitting_minutes)
		VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.Date, e.DailySteps, e.ModerateMinutes, e.SittingMinutes)
	if err != nil {
		return fmt.Errorf("exercise insert: %w", err)
	}
	return nil
}

func (r *ExerciseRepo) ListAll(ctx context.Context) ([]ExerciseEntry, error) {
	return r.list(ctx, `
		SELECT id, date, daily_steps, moderate_minutes, sitting_minutes
		FROM exercise_entries ORDER BY date ASC
	`)
}

func (r *ExerciseRepo) ListSince(ctx context.Context, since time.Time) ([]ExerciseEntry, error) {
	return r.list(ctx, `
		SELECT id, date, daily_steps, moderate_minutes, sitting_minutes
		FROM exercise_entries WHERE date >= ? ORDER BY date ASC
	`, since)
}

func (r *ExerciseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercise_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("exercise delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("exercise delete rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("exercise entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *ExerciseRepo) list(ctx context.Context, query string, args ...any) ([]ExerciseEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exercise list: %w", err)
	}
	defer rows.Close()

	var out []ExerciseEntry
	for rows.Next() {
		var e ExerciseEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.DailySteps, &e.ModerateMinutes, &e.SittingMinutes); err != nil {
			return nil, fmt.Errorf("exercise scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercise list rows: %w", err)
	}
	return out, nil
}
