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

// ColourRuleStore handles colour rule database operations.
type ColourRuleStore struct {
	db *sql.DB
}

// NewColourRuleStore creates a new ColourRuleStore.
func NewColourRuleStore(db *sql.DB) *ColourRuleStore {
	return &ColourRuleStore{db: db}
}

const colourRuleColumns = `wedding_type, bride_colour, groom_colour, bridesmaids_colour,
	best_men_colour, flower_deco_colour, hall_decor_colour`

func scanColourRule(scanner interface{ Scan(...any) error }) (*models.ColourRule, error) {
	var r models.ColourRule
	err := scanner.Scan(&r.WeddingType, &r.BrideColour, &r.GroomColour, &r.BridesmaidsColour,
		&r.BestMenColour, &r.FlowerDecoColour, &r.HallDecorColour)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns every colour rule ordered by wedding type and bride colour.
func (s *ColourRuleStore) List(ctx context.Context) ([]models.ColourRule, error) {
	return s.query(ctx, `SELECT `+colourRuleColumns+` FROM colour_rules ORDER BY wedding_type, bride_colour`)
}

// ListByWeddingType returns the rules of one wedding type.
func (s *ColourRuleStore) ListByWeddingType(ctx context.Context, weddingType string) ([]models.ColourRule, error) {
	return s.query(ctx, `SELECT `+colourRuleColumns+` FROM colour_rules WHERE wedding_type = $1 ORDER BY bride_colour`, weddingType)
}

func (s *ColourRuleStore) query(ctx context.Context, query string, args ...any) ([]models.ColourRule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list colour rules: %w", err)
	}
	defer rows.Close()

	var items []models.ColourRule
	for rows.Next() {
		r, err := scanColourRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan colour rule: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// Upsert creates or replaces the rule keyed by (wedding type, bride
// colour). The bride colour must be a cultural colour of the wedding type
// and must not be restricted for it.
func (s *ColourRuleStore) Upsert(ctx context.Context, r *models.ColourRule) (*models.ColourRule, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var known, restricted bool
	err = tx.QueryRowContext(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM cultural_colours
			        WHERE wedding_type = $1 AND lower(colour_name) = lower($2)),
			EXISTS (SELECT 1 FROM restricted_colours
			        WHERE wedding_type = $1 AND lower(restricted_colour) = lower($2))
	`, r.WeddingType, r.BrideColour).Scan(&known, &restricted)
	if err != nil {
		return nil, fmt.Errorf("check bride colour: %w", err)
	}
	if !known {
		return nil, &ReferenceError{Reason: fmt.Sprintf("bride colour %q is not a cultural colour of %q",
			r.BrideColour, r.WeddingType)}
	}
	if restricted {
		return nil, &ReferenceError{Reason: fmt.Sprintf("bride colour %q is restricted for %q",
			r.BrideColour, r.WeddingType)}
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO colour_rules (`+colourRuleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (wedding_type, (lower(bride_colour))) DO UPDATE
		SET groom_colour = EXCLUDED.groom_colour,
		    bridesmaids_colour = EXCLUDED.bridesmaids_colour,
		    best_men_colour = EXCLUDED.best_men_colour,
		    flower_deco_colour = EXCLUDED.flower_deco_colour,
		    hall_decor_colour = EXCLUDED.hall_decor_colour
		RETURNING `+colourRuleColumns,
		r.WeddingType, r.BrideColour, r.GroomColour, r.BridesmaidsColour,
		r.BestMenColour, r.FlowerDecoColour, r.HallDecorColour,
	)
	saved, err := scanColourRule(row)
	if err != nil {
		return nil, fmt.Errorf("upsert colour rule: %w", classify(err))
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit colour rule: %w", err)
	}
	return saved, nil
}

// Delete removes the rule for (wedding type, bride colour).
func (s *ColourRuleStore) Delete(ctx context.Context, weddingType, brideColour string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM colour_rules WHERE wedding_type = $1 AND lower(bride_colour) = lower($2)`,
		weddingType, brideColour)
	if err != nil {
		return fmt.Errorf("delete colour rule: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete colour rule %q for %q: %w", brideColour, weddingType, ErrNotFound)
	}
	return nil
}
