package store

import (
	"context"
	"database/sql"
	"fmt"

	"weddingplanner/internal/models"
)

// ColourMappingStore handles the global colour name dictionary.
type ColourMappingStore struct {
	db *sql.DB
}

// NewColourMappingStore creates a new ColourMappingStore.
func NewColourMappingStore(db *sql.DB) *ColourMappingStore {
	return &ColourMappingStore{db: db}
}

const colourMappingColumns = `colour_name, r, g, b, description`

func scanColourMapping(scanner interface{ Scan(...any) error }) (*models.ColourMapping, error) {
	var m models.ColourMapping
	if err := scanner.Scan(&m.Name, &m.RGB.R, &m.RGB.G, &m.RGB.B, &m.Description); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all mappings ordered by name.
func (s *ColourMappingStore) List(ctx context.Context) ([]models.ColourMapping, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+colourMappingColumns+` FROM colour_mappings ORDER BY colour_name`)
	if err != nil {
		return nil, fmt.Errorf("list colour mappings: %w", err)
	}
	defer rows.Close()

	var items []models.ColourMapping
	for rows.Next() {
		m, err := scanColourMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scan colour mapping: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Upsert creates or replaces a mapping.
func (s *ColourMappingStore) Upsert(ctx context.Context, m *models.ColourMapping) (*models.ColourMapping, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO colour_mappings (`+colourMappingColumns+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ((lower(colour_name))) DO UPDATE
		SET r = EXCLUDED.r, g = EXCLUDED.g, b = EXCLUDED.b, description = EXCLUDED.description
		RETURNING `+colourMappingColumns,
		m.Name, m.RGB.R, m.RGB.G, m.RGB.B, m.Description,
	)
	saved, err := scanColourMapping(row)
	if err != nil {
		return nil, fmt.Errorf("upsert colour mapping: %w", classify(err))
	}
	return saved, nil
}

// Delete removes a mapping.
func (s *ColourMappingStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM colour_mappings WHERE lower(colour_name) = lower($1)`, name)
	if err != nil {
		return fmt.Errorf("delete colour mapping: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete colour mapping %q: %w", name, ErrNotFound)
	}
	return nil
}
