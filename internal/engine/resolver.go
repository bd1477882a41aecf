// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"fmt"
	"strings"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/models"
)

// ResolvedColour is the canonical, non-restricted cultural colour a raw
// bride colour input resolved to.
type ResolvedColour struct {
	WeddingType models.WeddingType
	Input       string
	Colour      models.CulturalColour

	// Substituted is set whenever Colour.Name differs from the literal
	// input: a restricted or unknown name, or any hex literal.
	Substituted bool
	// InputRestricted is set when the input named (or exactly matched the
	// RGB of) a restricted colour.
	InputRestricted bool
	// Distance is the RGB distance from the input to Colour; 0 for a name
	// that matched directly.
	Distance float64
	Message  string
}

// Resolve maps a raw wedding type and bride colour onto an eligible
// cultural colour of that wedding type.
func (s *Snapshot) Resolve(weddingTypeRaw, brideColourRaw string) (*ResolvedColour, error) {
	te, err := s.weddingType(weddingTypeRaw)
	if err != nil {
		return nil, err
	}
	wtName := te.info.Name

	input := strings.TrimSpace(brideColourRaw)
	if input == "" {
		return nil, newError(ErrInvalidColourInput, wtName, brideColourRaw,
			"bride colour is empty")
	}
	if len(te.colours) == 0 {
		return nil, newError(ErrNoEligibleColours, wtName, input,
			"%s has no cultural colours", wtName)
	}
	if len(te.eligible) == 0 {
		return nil, newError(ErrNoEligibleColours, wtName, input,
			"every cultural colour of %s is restricted", wtName)
	}

	res := &ResolvedColour{WeddingType: te.info, Input: input}

	if colour.IsHex(input) {
		rgb, err := colour.ParseHex(input)
		if err != nil {
			return nil, newError(ErrInvalidColourInput, wtName, input, "%v", err)
		}
		res.Colour, res.Distance = nearest(te.eligible, rgb)
		res.Substituted = true

		if name, ok := s.restrictedAt(te, rgb); ok {
			res.InputRestricted = true
			res.Message = fmt.Sprintf(
				"The colour '%s' (%s) is traditionally restricted for %s. Suggesting the closest alternative colour '%s' instead.",
				input, name, wtName, res.Colour.Name)
		} else {
			res.Message = fmt.Sprintf(
				"The colour '%s' was matched to the closest %s colour '%s'.",
				input, wtName, res.Colour.Name)
		}
		return res, nil
	}

	if c, ok := te.eligByKey[colour.Key(input)]; ok {
		res.Colour = c
		return res, nil
	}

	rgb, ok := s.rgbForName(te, input)
	if !ok {
		return nil, newError(ErrInvalidColourInput, wtName, input,
			"colour %q is neither a #RRGGBB value nor a known colour name", input)
	}
	res.Colour, res.Distance = nearest(te.eligible, rgb)
	res.Substituted = true

	if te.isRestricted(input) {
		res.InputRestricted = true
		res.Message = fmt.Sprintf(
			"The colour '%s' is traditionally restricted for %s. Suggesting the closest alternative colour '%s' instead.",
			input, wtName, res.Colour.Name)
	} else {
		res.Message = fmt.Sprintf(
			"The colour '%s' is not registered for %s. Suggesting the closest registered colour '%s' instead.",
			input, wtName, res.Colour.Name)
	}
	return res, nil
}

// nearest returns the candidate closest to target. candidates must be
// sorted by Name so that the first of several equally distant colours is
// the lexicographically smallest.
func nearest(candidates []models.CulturalColour, target colour.RGB) (models.CulturalColour, float64) {
	best := -1
	bestD2 := 0
	for i, c := range candidates {
		d2 := colour.SquaredDistance(c.RGB, target)
		if best < 0 || d2 < bestD2 {
			best, bestD2 = i, d2
		}
	}
	return candidates[best], colour.Distance(candidates[best].RGB, target)
}

// rgbForName derives an RGB for a colour name, trying in order the wedding
// type's own cultural colours (restricted ones included), the
// colour_mappings table, cultural colours of other wedding types, the
// built-in palette and finally the mean of a composite name's parts.
func (s *Snapshot) rgbForName(te *typeEntry, name string) (colour.RGB, bool) {
	if rgb, ok := s.rgbForSimpleName(te, name); ok {
		return rgb, true
	}

	parts := colour.SplitComponents(name)
	if len(parts) < 2 {
		return colour.RGB{}, false
	}
	var found []colour.RGB
	for _, p := range parts {
		if rgb, ok := s.rgbForSimpleName(te, p); ok {
			found = append(found, rgb)
		}
	}
	return colour.Average(found...)
}

func (s *Snapshot) rgbForSimpleName(te *typeEntry, name string) (colour.RGB, bool) {
	k := colour.Key(name)
	if te != nil {
		if c, ok := te.byKey[k]; ok {
			return c.RGB, true
		}
	}
	if rgb, ok := s.mappings[k]; ok {
		return rgb, true
	}
	if rgb, ok := s.anyType[k]; ok {
		return rgb, true
	}
	return colour.Named(name)
}

// restrictedAt reports the restricted colour of te, if any, whose RGB is
// exactly rgb.
func (s *Snapshot) restrictedAt(te *typeEntry, rgb colour.RGB) (string, bool) {
	var hit string
	for _, name := range te.restricted {
		c, ok := s.rgbForSimpleName(te, name)
		if !ok || c != rgb {
			continue
		}
		if hit == "" || name < hit {
			hit = name
		}
	}
	return hit, hit != ""
}

// AvailableColours returns the eligible (non-restricted) cultural colours
// of a wedding type, sorted by name.
func (s *Snapshot) AvailableColours(weddingTypeRaw string) ([]models.CulturalColour, error) {
	te, err := s.weddingType(weddingTypeRaw)
	if err != nil {
		return nil, err
	}
	return append([]models.CulturalColour(nil), te.eligible...), nil
}
