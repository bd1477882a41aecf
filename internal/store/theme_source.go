// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// theme_source.go bundles the rule-table stores into the read-only source
// the theme engine builds its snapshots from.
package store

import (
	"context"
	"database/sql"

	"weddingplanner/internal/engine"
	"weddingplanner/internal/models"
)

var _ engine.Source = (*EngineSource)(nil)

// ThemeSource exposes the rule store to the theme engine.
type ThemeSource struct {
	WeddingTypes      *WeddingTypeStore
	CulturalColours   *CulturalColourStore
	RestrictedColours *RestrictedColourStore
	ColourRules       *ColourRuleStore
	FoodLocations     *FoodLocationStore
	ColourMappings    *ColourMappingStore
}

// NewThemeSource creates every rule-table store on one connection pool.
func NewThemeSource(db *sql.DB) *ThemeSource {
	return &ThemeSource{
		WeddingTypes:      NewWeddingTypeStore(db),
		CulturalColours:   NewCulturalColourStore(db),
		RestrictedColours: NewRestrictedColourStore(db),
		ColourRules:       NewColourRuleStore(db),
		FoodLocations:     NewFoodLocationStore(db),
		ColourMappings:    NewColourMappingStore(db),
	}
}

// Source adapts the stores to engine.Source.
func (t *ThemeSource) Source() *EngineSource {
	return &EngineSource{t: t}
}

// EngineSource implements engine.Source on top of a ThemeSource.
type EngineSource struct {
	t *ThemeSource
}

// ActiveWeddingTypes returns the wedding types the engine serves.
func (s *EngineSource) ActiveWeddingTypes(ctx context.Context) ([]models.WeddingType, error) {
	return s.t.WeddingTypes.ListActive(ctx)
}

// CulturalColours returns every cultural colour of a wedding type,
// restricted ones included.
func (s *EngineSource) CulturalColours(ctx context.Context, weddingType string) ([]models.CulturalColour, error) {
	return s.t.CulturalColours.ListByWeddingType(ctx, weddingType)
}

// RestrictedColours returns the restricted colour names of a wedding type.
func (s *EngineSource) RestrictedColours(ctx context.Context, weddingType string) ([]string, error) {
	return s.t.RestrictedColours.ListByWeddingType(ctx, weddingType)
}

// ColourRules returns every stored colour rule.
func (s *EngineSource) ColourRules(ctx context.Context) ([]models.ColourRule, error) {
	return s.t.ColourRules.List(ctx)
}

// FoodLocation returns the food and venue row of a wedding type, or nil.
func (s *EngineSource) FoodLocation(ctx context.Context, weddingType string) (*models.FoodLocation, error) {
	return s.t.FoodLocations.FindByWeddingType(ctx, weddingType)
}

// ColourMappings returns the global colour name dictionary.
func (s *EngineSource) ColourMappings(ctx context.Context) ([]models.ColourMapping, error) {
	return s.t.ColourMappings.List(ctx)
}
