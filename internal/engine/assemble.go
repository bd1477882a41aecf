// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"weddingplanner/internal/colour"
	"weddingplanner/internal/models"
)

// Match tells how the rule behind a recommendation was found.
type Match string

const (
	MatchExact    Match = "exact"
	MatchFallback Match = "fallback"
)

// Swatch is one component of a (possibly composite) colour name.
type Swatch struct {
	Name string      `json:"name"`
	Hex  *string     `json:"hex"`
	RGB  *colour.RGB `json:"rgb"`
}

// ColourDetail describes one colour of a recommendation. Hex and RGB are
// nil when no RGB is known for the name.
type ColourDetail struct {
	Name         string      `json:"name"`
	Hex          *string     `json:"hex"`
	RGB          *colour.RGB `json:"rgb"`
	IsRestricted bool        `json:"is_restricted"`
	Swatches     []Swatch    `json:"swatches,omitempty"`
}

// Recommendation is the complete, explainable answer for one
// (wedding type, bride colour) request.
type Recommendation struct {
	WeddingType       string       `json:"wedding_type"`
	Input             string       `json:"input"`
	BrideColour       ColourDetail `json:"bride_colour"`
	RuleBrideColour   string       `json:"rule_bride_colour"`
	GroomColour       ColourDetail `json:"groom_colour"`
	BridesmaidsColour ColourDetail `json:"bridesmaids_colour"`
	BestMenColour     ColourDetail `json:"best_men_colour"`
	FlowerDecoColour  ColourDetail `json:"flower_deco_colour"`
	HallDecorColour   ColourDetail `json:"hall_decor_colour"`

	CulturalSignificance *string `json:"cultural_significance"`
	FoodMenu             *string `json:"food_menu"`
	Drinks               *string `json:"drinks"`
	PreShootLocations    *string `json:"pre_shoot_locations"`

	Confidence         float64 `json:"confidence"`
	Match              Match   `json:"match"`
	Substituted        bool    `json:"substituted"`
	RestrictionMessage *string `json:"restriction_message,omitempty"`
	Snapshot           string  `json:"snapshot"`
}

// Companion returns the detail for one companion role.
func (r *Recommendation) Companion(role models.Role) ColourDetail {
	switch role {
	case models.RoleGroom:
		return r.GroomColour
	case models.RoleBridesmaids:
		return r.BridesmaidsColour
	case models.RoleBestMen:
		return r.BestMenColour
	case models.RoleFlowerDeco:
		return r.FlowerDecoColour
	case models.RoleHallDecor:
		return r.HallDecorColour
	}
	return ColourDetail{}
}

// Assemble merges a resolved colour and a rule prediction with the wedding
// type's food and venue data. Missing food data stays nil.
func (s *Snapshot) Assemble(resolved *ResolvedColour, pred Prediction, confidence float64, match Match) *Recommendation {
	te := s.types[colour.Key(resolved.WeddingType.Name)]

	bride := resolved.Colour
	rec := &Recommendation{
		WeddingType: resolved.WeddingType.Name,
		Input:       resolved.Input,
		BrideColour: ColourDetail{
			Name:         bride.Name,
			Hex:          ptr(bride.RGB.Hex()),
			RGB:          ptr(bride.RGB),
			IsRestricted: te.isRestricted(bride.Name),
		},
		RuleBrideColour:      pred.Rule.BrideColour,
		GroomColour:          s.detail(te, pred.Rule.GroomColour),
		BridesmaidsColour:    s.detail(te, pred.Rule.BridesmaidsColour),
		BestMenColour:        s.detail(te, pred.Rule.BestMenColour),
		FlowerDecoColour:     s.detail(te, pred.Rule.FlowerDecoColour),
		HallDecorColour:      s.detail(te, pred.Rule.HallDecorColour),
		CulturalSignificance: bride.CulturalSignificance,
		Confidence:           confidence,
		Match:                match,
		Substituted:          resolved.Substituted,
		Snapshot:             s.Fingerprint,
	}

	if te.food != nil {
		rec.FoodMenu = ptr(te.food.FoodMenu)
		rec.Drinks = ptr(te.food.Drinks)
		rec.PreShootLocations = ptr(te.food.PreShootLocations)
	}
	if resolved.Substituted && resolved.Message != "" {
		rec.RestrictionMessage = ptr(resolved.Message)
	}
	return rec
}

// detail resolves a predicted colour name to RGB within the wedding type
// and flags it if the store lists it as restricted.
func (s *Snapshot) detail(te *typeEntry, name string) ColourDetail {
	d := ColourDetail{Name: name, IsRestricted: te.isRestricted(name)}
	if rgb, ok := s.rgbForName(te, name); ok {
		d.RGB = ptr(rgb)
		d.Hex = ptr(rgb.Hex())
	}

	if parts := colour.SplitComponents(name); len(parts) > 1 {
		for _, p := range parts {
			sw := Swatch{Name: p}
			if rgb, ok := s.rgbForSimpleName(te, p); ok {
				sw.RGB = ptr(rgb)
				sw.Hex = ptr(rgb.Hex())
			}
			d.Swatches = append(d.Swatches, sw)
		}
	}
	return d
}

// Predict runs the full pipeline on this snapshot: resolve the bride
// colour, look up its rule (falling back to the nearest rule-bearing
// colour), then assemble the recommendation.
func (s *Snapshot) Predict(weddingTypeRaw, brideColourRaw string) (*Recommendation, error) {
	resolved, err := s.Resolve(weddingTypeRaw, brideColourRaw)
	if err != nil {
		return nil, err
	}

	wtName := resolved.WeddingType.Name
	if pred, ok := s.table.Lookup(wtName, resolved.Colour.Name); ok {
		return s.Assemble(resolved, pred, 1.0, MatchExact), nil
	}

	pred, confidence, err := s.Fallback(wtName, resolved.Colour)
	if err != nil {
		return nil, err
	}
	return s.Assemble(resolved, pred, confidence, MatchFallback), nil
}

func ptr[T any](v T) *T {
	return &v
}
