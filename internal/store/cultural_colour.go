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

// CulturalColourStore handles cultural colour database operations.
type CulturalColourStore struct {
	db *sql.DB
}

// NewCulturalColourStore creates a new CulturalColourStore.
func NewCulturalColourStore(db *sql.DB) *CulturalColourStore {
	return &CulturalColourStore{db: db}
}

const culturalColourColumns = `wedding_type, colour_name, r, g, b, cultural_significance`

func scanCulturalColour(scanner interface{ Scan(...any) error }) (*models.CulturalColour, error) {
	var c models.CulturalColour
	err := scanner.Scan(&c.WeddingType, &c.Name, &c.RGB.R, &c.RGB.G, &c.RGB.B, &c.CulturalSignificance)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByWeddingType returns the colours of one wedding type ordered by name.
func (s *CulturalColourStore) ListByWeddingType(ctx context.Context, weddingType string) ([]models.CulturalColour, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+culturalColourColumns+`
		FROM cultural_colours
		WHERE wedding_type = $1
		ORDER BY colour_name
	`, weddingType)
	if err != nil {
		return nil, fmt.Errorf("list cultural colours: %w", err)
	}
	defer rows.Close()

	var items []models.CulturalColour
	for rows.Next() {
		c, err := scanCulturalColour(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cultural colour: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Upsert creates or replaces the colour keyed by (wedding type, name). Names
// are compared without case and the stored spelling is kept.
func (s *CulturalColourStore) Upsert(ctx context.Context, c *models.CulturalColour) (*models.CulturalColour, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO cultural_colours (wedding_type, colour_name, r, g, b, cultural_significance)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (wedding_type, (lower(colour_name))) DO UPDATE
		SET r = EXCLUDED.r, g = EXCLUDED.g, b = EXCLUDED.b,
		    cultural_significance = EXCLUDED.cultural_significance
		RETURNING `+culturalColourColumns,
		c.WeddingType, c.Name, c.RGB.R, c.RGB.G, c.RGB.B, c.CulturalSignificance,
	)
	saved, err := scanCulturalColour(row)
	if err != nil {
		return nil, fmt.Errorf("upsert cultural colour: %w", classify(err))
	}
	return saved, nil
}

// Delete removes one cultural colour.
func (s *CulturalColourStore) Delete(ctx context.Context, weddingType, name string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM cultural_colours WHERE wedding_type = $1 AND lower(colour_name) = lower($2)`,
		weddingType, name)
	if err != nil {
		return fmt.Errorf("delete cultural colour: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete cultural colour %q for %q: %w", name, weddingType, ErrNotFound)
	}
	return nil
}
