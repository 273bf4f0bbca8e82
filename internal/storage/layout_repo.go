package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LayoutRepo persists named dashboard-layout documents as opaque JSON.
// Parsing and fallback-to-default live with the dashboard, not here.
type LayoutRepo struct {
	db DBTX
}

func NewLayoutRepo(db DBTX) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// Get returns the stored document, or ("", nil) when none exists.
func (r *LayoutRepo) Get(ctx context.Context, name string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT doc FROM layouts WHERE name = ?`, name)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("layout get: %w", err)
	}
	return doc, nil
}

func (r *LayoutRepo) Put(ctx context.Context, name, doc string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO layouts (name, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, name, doc, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("layout put: %w", err)
	}
	return nil
}

func (r *LayoutRepo) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE name = ?`, name); err != nil {
		return fmt.Errorf("layout delete: %w", err)
	}
	return nil
}
