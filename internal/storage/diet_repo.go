package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type DietRepo struct {
	db DBTX
}

func NewDietRepo(db DBTX) *DietRepo {
	return &DietRepo{db: db}
}

// WithTx returns a copy of the repo bound to tx.
func (r *DietRepo) WithTx(tx *sql.Tx) *DietRepo {
	return &DietRepo{db: tx}
}

func (r *DietRepo) Insert(ctx context.Context, e DietEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diet_entries (id, date, calorie_intake, veg_ratio, protein_ratio, starch_ratio, sugary_drinks, fried_food)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Date, e.CalorieIntake, e.VegRatio, e.ProteinRatio, e.StarchRatio, e.SugaryDrinks, e.FriedFood)
	if err != nil {
		return fmt.Errorf("diet insert: %w", err)
	}
	return nil
}

func (r *DietRepo) ListAll(ctx context.Context) ([]DietEntry, error) {
	return r.list(ctx, `
		SELECT id, date, calorie_intake, veg_ratio, protein_ratio, starch_ratio, sugary_drinks, fried_food
		FROM diet_entries ORDER BY date ASC
	`)
}

func (r *DietRepo) ListSince(ctx context.Context, since time.Time) ([]DietEntry, error) {
	return r.list(ctx, `
		SELECT id, date, calorie_intake, veg_ratio, protein_ratio, starch_ratio, sugary_drinks, fried_food
		FROM diet_entries WHERE date >= ? ORDER BY date ASC
	`, since)
}

func (r *DietRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diet_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("diet delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("diet delete rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("diet entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *DietRepo) list(ctx context.Context, query string, args ...any) ([]DietEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("diet list: %w", err)
	}
	defer rows.Close()

	var out []DietEntry
	for rows.Next() {
		var e DietEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.CalorieIntake, &e.VegRatio, &e.ProteinRatio, &e.StarchRatio, &e.SugaryDrinks, &e.FriedFood); err != nil {
			return nil, fmt.Errorf("diet scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("diet list rows: %w", err)
	}
	return out, nil
}
