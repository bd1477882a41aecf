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

// RestrictedColourStore handles restricted colour database operations.
type RestrictedColourStore struct {
	db *sql.DB
}

// NewRestrictedColourStore creates a new RestrictedColourStore.
func NewRestrictedColourStore(db *sql.DB) *RestrictedColourStore {
	return &RestrictedColourStore{db: db}
}

// ListByWeddingType returns the restricted colour names of one wedding type.
func (s *RestrictedColourStore) ListByWeddingType(ctx context.Context, weddingType string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT restricted_colour
		FROM restricted_colours
		WHERE wedding_type = $1
		ORDER BY restricted_colour
	`, weddingType)
	if err != nil {
		return nil, fmt.Errorf("list restricted colours: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan restricted colour: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Add restricts a colour for a wedding type. Adding an existing
// restriction is a no-op.
func (s *RestrictedColourStore) Add(ctx context.Context, r *models.RestrictedColour) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO restricted_colours (wedding_type, restricted_colour)
		VALUES ($1, $2)
		ON CONFLICT (wedding_type, (lower(restricted_colour))) DO NOTHING
	`, r.WeddingType, r.Name)
	if err != nil {
		return fmt.Errorf("add restricted colour: %w", classify(err))
	}
	return nil
}

// Delete lifts a restriction.
func (s *RestrictedColourStore) Delete(ctx context.Context, weddingType, name string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM restricted_colours WHERE wedding_type = $1 AND lower(restricted_colour) = lower($2)`,
		weddingType, name)
	if err != nil {
		return fmt.Errorf("delete restricted colour: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete restricted colour %q for %q: %w", name, weddingType, ErrNotFound)
	}
	return nil
}
