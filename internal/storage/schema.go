package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS diet_entries (
			id TEXT PRIMARY KEY,
			date DATETIME NOT NULL,
			calorie_intake INTEGER NOT NULL DEFAULT 0,
			veg_ratio REAL NOT NULL DEFAULT 0,
			protein_ratio REAL NOT NULL DEFAULT 0,
			starch_ratio REAL NOT NULL DEFAULT 0,
			sugary_drinks INTEGER NOT NULL DEFAULT 0,
			fried_food INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS exercise_entries (
			id TEXT PRIMARY KEY,
			date DATETIME NOT NULL,
			daily_steps INTEGER NOT NULL DEFAULT 0,
			moderate_minutes INTEGER NOT NULL DEFAULT 0,
			sitting_minutes INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS sleep_entries (
			id TEXT PRIMARY KEY,
			date DATETIME NOT NULL,
			bed_time TEXT NOT NULL,
			wake_time TEXT NOT NULL,
			duration REAL NOT NULL DEFAULT 0,
			phone_before_bed INTEGER NOT NULL DEFAULT 0
		);`,
		// Single-document key-value surface for the dashboard layout.
		`CREATE TABLE IF NOT EXISTS layouts (
			name TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_diet_entries_date ON diet_entries(date);`,
		`CREATE INDEX IF NOT EXISTS idx_exercise_entries_date ON exercise_entries(date);`,
		`CREATE INDEX IF NOT EXISTS idx_sleep_entries_date ON sleep_entries(date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
