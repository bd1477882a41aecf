package database

import (
	"context"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/engine"
	"weddingplanner/internal/models"
)

// FixtureSource serves a parsed fixture to the theme engine directly, so
// a seed file can be checked end to end without a database.
type FixtureSource struct {
	f *Fixture
}

var _ engine.Source = (*FixtureSource)(nil)

// Source returns an engine source reading from the fixture.
func (f *Fixture) Source() *FixtureSource {
	return &FixtureSource{f: f}
}

func (s *FixtureSource) find(name string) *FixtureWeddingType {
	for i := range s.f.WeddingTypes {
		if s.f.WeddingTypes[i].Name == name {
			return &s.f.WeddingTypes[i]
		}
	}
	return nil
}

func (s *FixtureSource) ActiveWeddingTypes(_ context.Context) ([]models.WeddingType, error) {
	var out []models.WeddingType
	for _, wt := range s.f.WeddingTypes {
		if wt.Inactive {
			continue
		}
		out = append(out, models.WeddingType{Name: wt.Name, Description: wt.Description, IsActive: true})
	}
	return out, nil
}

func (s *FixtureSource) CulturalColours(_ context.Context, weddingType string) ([]models.CulturalColour, error) {
	wt := s.find(weddingType)
	if wt == nil {
		return nil, nil
	}
	out := make([]models.CulturalColour, 0, len(wt.Colours))
	for _, c := range wt.Colours {
		// ParseFixture has already rejected unparsable values.
		rgb, _ := colour.Parse(c.RGB)
		cc := models.CulturalColour{WeddingType: wt.Name, Name: c.Name, RGB: rgb}
		if c.Significance != "" {
			sig := c.Significance
			cc.CulturalSignificance = &sig
		}
		out = append(out, cc)
	}
	return out, nil
}

func (s *FixtureSource) RestrictedColours(_ context.Context, weddingType string) ([]string, error) {
	wt := s.find(weddingType)
	if wt == nil {
		return nil, nil
	}
	return append([]string(nil), wt.Restricted...), nil
}

func (s *FixtureSource) ColourRules(_ context.Context) ([]models.ColourRule, error) {
	var out []models.ColourRule
	for _, wt := range s.f.WeddingTypes {
		for _, r := range wt.Rules {
			out = append(out, models.ColourRule{
				WeddingType:       wt.Name,
				BrideColour:       r.Bride,
				GroomColour:       r.Groom,
				BridesmaidsColour: r.Bridesmaids,
				BestMenColour:     r.BestMen,
				FlowerDecoColour:  r.FlowerDeco,
				HallDecorColour:   r.HallDecor,
			})
		}
	}
	return out, nil
}

func (s *FixtureSource) FoodLocation(_ context.Context, weddingType string) (*models.FoodLocation, error) {
	wt := s.find(weddingType)
	if wt == nil || wt.Food == nil {
		return nil, nil
	}
	return &models.FoodLocation{
		WeddingType:       wt.Name,
		FoodMenu:          wt.Food.Menu,
		Drinks:            wt.Food.Drinks,
		PreShootLocations: wt.Food.PreShootLocations,
	}, nil
}

func (s *FixtureSource) ColourMappings(_ context.Context) ([]models.ColourMapping, error) {
	out := make([]models.ColourMapping, 0, len(s.f.ColourMappings))
	for _, m := range s.f.ColourMappings {
		rgb, _ := colour.Parse(m.RGB)
		cm := models.ColourMapping{Name: m.Name, RGB: rgb}
		if m.Description != "" {
			desc := m.Description
			cm.Description = &desc
		}
		out = append(out, cm)
	}
	return out, nil
}
