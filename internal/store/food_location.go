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

// FoodLocationStore handles food and pre-shoot location database operations.
type FoodLocationStore struct {
	db *sql.DB
}

// NewFoodLocationStore creates a new FoodLocationStore.
func NewFoodLocationStore(db *sql.DB) *FoodLocationStore {
	return &FoodLocationStore{db: db}
}

const foodLocationColumns = `wedding_type, food_menu, drinks, pre_shoot_locations`

func scanFoodLocation(scanner interface{ Scan(...any) error }) (*models.FoodLocation, error) {
	var f models.FoodLocation
	if err := scanner.Scan(&f.WeddingType, &f.FoodMenu, &f.Drinks, &f.PreShootLocations); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all food rows ordered by wedding type.
func (s *FoodLocationStore) List(ctx context.Context) ([]models.FoodLocation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+foodLocationColumns+` FROM food_locations ORDER BY wedding_type`)
	if err != nil {
		return nil, fmt.Errorf("list food locations: %w", err)
	}
	defer rows.Close()

	var items []models.FoodLocation
	for rows.Next() {
		f, err := scanFoodLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food location: %w", err)
		}
		items = append(items, *f)
	}
	return items, rows.Err()
}

// FindByWeddingType returns the food row of a wedding type. Returns nil if not found.
func (s *FoodLocationStore) FindByWeddingType(ctx context.Context, weddingType string) (*models.FoodLocation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+foodLocationColumns+` FROM food_locations WHERE wedding_type = $1`, weddingType)
	f, err := scanFoodLocation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find food location: %w", err)
	}
	return f, nil
}

// Upsert creates or replaces the food row of a wedding type.
func (s *FoodLocationStore) Upsert(ctx context.Context, f *models.FoodLocation) (*models.FoodLocation, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO food_locations (`+foodLocationColumns+`)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (wedding_type) DO UPDATE
		SET food_menu = EXCLUDED.food_menu, drinks = EXCLUDED.drinks,
		    pre_shoot_locations = EXCLUDED.pre_shoot_locations
		RETURNING `+foodLocationColumns,
		f.WeddingType, f.FoodMenu, f.Drinks, f.PreShootLocations,
	)
	saved, err := scanFoodLocation(row)
	if err != nil {
		return nil, fmt.Errorf("upsert food location: %w", classify(err))
	}
	return saved, nil
}

// Delete removes the food row of a wedding type.
func (s *FoodLocationStore) Delete(ctx context.Context, weddingType string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM food_locations WHERE wedding_type = $1`, weddingType)
	if err != nil {
		return fmt.Errorf("delete food location: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete food location for %q: %w", weddingType, ErrNotFound)
	}
	return nil
}
