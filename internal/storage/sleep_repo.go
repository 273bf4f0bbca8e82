package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SleepRepo struct {
	db DBTX
}

func NewSleepRepo(db DBTX) *SleepRepo {
	return &SleepRepo{db: db}
}

// WithTx returns a copy of the repo bound to tx.
func (r *SleepRepo) WithTx(tx *sql.Tx) *SleepRepo {
	return &SleepRepo{db: tx}
}

func (r *SleepRepo) Insert(ctx context.Context, e SleepEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sleep_entries (id, date, bed_time, wake_time, duration, phone_before_bed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Date, e.BedTime, e.WakeTime, e.Duration, boolToInt(e.PhoneBeforeBed))
	if err != nil {
		return fmt.Errorf("sleep insert: %w", err)
	}
	return nil
}

func (r *SleepRepo) ListAll(ctx context.Context) ([]SleepEntry, error) {
	return r.list(ctx, `
		SELECT id, date, bed_time, wake_time, duration, phone_before_bed
		FROM sleep_entries ORDER BY date ASC
	`)
}

func (r *SleepRepo) ListSince(ctx context.Context, since time.Time) ([]SleepEntry, error) {
	return r.list(ctx, `
		SELECT id, date, bed_time, wake_time, duration, phone_before_bed
		FROM sleep_entries WHERE date >= ? ORDER BY date ASC
	`, since)
}

func (r *SleepRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sleep_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sleep delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sleep delete rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sleep entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SleepRepo) list(ctx context.Context, query string, args ...any) ([]SleepEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sleep list: %w", err)
	}
	defer rows.Close()

	var out []SleepEntry
	for rows.Next() {
		var e SleepEntry
		var phone int
		if err := rows.Scan(&e.ID, &e.Date, &e.BedTime, &e.WakeTime, &e.Duration, &phone); err != nil {
			return nil, fmt.Errorf("sleep scan: %w", err)
		}
		e.PhoneBeforeBed = phone != 0
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sleep list rows: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
