// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"weddingplanner/internal/models"
)

// WeddingTypeStore handles wedding type database operations.
type WeddingTypeStore struct {
	db *sql.DB
}

// NewWeddingTypeStore creates a new WeddingTypeStore.
func NewWeddingTypeStore(db *sql.DB) *WeddingTypeStore {
	return &WeddingTypeStore{db: db}
}

const weddingTypeColumns = `name, description, is_active, created_at, updated_at`

func scanWeddingType(scanner interface{ Scan(...any) error }) (*models.WeddingType, error) {
	var wt models.WeddingType
	err := scanner.Scan(&wt.Name, &wt.Description, &wt.IsActive, &wt.CreatedAt, &wt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &wt, nil
}

// List returns all wedding types, active or not, ordered by name.
func (s *WeddingTypeStore) List(ctx context.Context) ([]models.WeddingType, error) {
	return s.list(ctx, `SELECT `+weddingTypeColumns+` FROM wedding_types ORDER BY name`)
}

// ListActive returns the wedding types the engine serves, ordered by name.
func (s *WeddingTypeStore) ListActive(ctx context.Context) ([]models.WeddingType, error) {
	return s.list(ctx, `SELECT `+weddingTypeColumns+` FROM wedding_types WHERE is_active = TRUE ORDER BY name`)
}

func (s *WeddingTypeStore) list(ctx context.Context, query string) ([]models.WeddingType, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list wedding types: %w", err)
	}
	defer rows.Close()

	var items []models.WeddingType
	for rows.Next() {
		wt, err := scanWeddingType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wedding type: %w", err)
		}
		items = append(items, *wt)
	}
	return items, rows.Err()
}

// FindByName retrieves a wedding type by name, ignoring case. Returns nil if not found.
func (s *WeddingTypeStore) FindByName(ctx context.Context, name string) (*models.WeddingType, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+weddingTypeColumns+` FROM wedding_types WHERE lower(name) = lower($1)`, name)
	wt, err := scanWeddingType(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find wedding type by name: %w", err)
	}
	return wt, nil
}

// Upsert creates the wedding type or updates its description and active flag.
// A name that differs from a stored one only in case updates that row and
// keeps the stored spelling.
func (s *WeddingTypeStore) Upsert(ctx context.Context, wt *models.WeddingType) (*models.WeddingType, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO wedding_types (name, description, is_active)
		VALUES ($1, $2, $3)
		ON CONFLICT ((lower(name))) DO UPDATE
		SET description = EXCLUDED.description, is_active = EXCLUDED.is_active, updated_at = NOW()
		RETURNING `+weddingTypeColumns,
		wt.Name, wt.Description, wt.IsActive,
	)
	saved, err := scanWeddingType(row)
	if err != nil {
		return nil, fmt.Errorf("upsert wedding type: %w", classify(err))
	}
	return saved, nil
}

// Delete removes a wedding type. Its colours, restrictions, rules and food
// row go with it.
func (s *WeddingTypeStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM wedding_types WHERE lower(name) = lower($1)`, name)
	if err != nil {
		return fmt.Errorf("delete wedding type: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete wedding type %q: %w", name, ErrNotFound)
	}
	return nil
}
