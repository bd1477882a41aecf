// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"log/slog"
	"math"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/models"
)

// Confidence converts an RGB distance into a 0–1 score: 1 at distance 0,
// falling linearly to 0 at MaxDistance.
func Confidence(distance float64) float64 {
	return math.Max(0, 1-distance/colour.MaxDistance)
}

// Fallback picks the rule of the wedding type whose bride colour is
// nearest in RGB to resolved. Candidates are restricted to the same
// wedding type; when it has no usable rule the result is ErrNoRuleData,
// never a rule borrowed from elsewhere.
func (s *Snapshot) Fallback(weddingTypeRaw string, resolved models.CulturalColour) (Prediction, float64, error) {
	te, err := s.weddingType(weddingTypeRaw)
	if err != nil {
		return Prediction{}, 0, err
	}
	wtName := te.info.Name

	var (
		bestKey string
		bestRGB colour.RGB
		bestD2  = -1
	)
	// Children is sorted, so keeping only strictly closer candidates breaks
	// ties on the lexicographically smallest bride colour.
	for _, key := range s.table.Children(wtName) {
		c, ok := te.byKey[colour.Key(key)]
		if !ok {
			slog.Debug("fallback candidate has no cultural colour",
				"wedding_type", wtName,
				"bride_colour", key,
			)
			continue
		}
		if te.isRestricted(key) {
			continue
		}
		d2 := colour.SquaredDistance(c.RGB, resolved.RGB)
		if bestD2 < 0 || d2 < bestD2 {
			bestKey, bestRGB, bestD2 = key, c.RGB, d2
		}
	}

	if bestD2 < 0 {
		return Prediction{}, 0, newError(ErrNoRuleData, wtName, resolved.Name,
			"no colour rules are configured for %s", wtName)
	}

	pred, ok := s.table.Lookup(wtName, bestKey)
	if !ok {
		return Prediction{}, 0, newError(ErrNoRuleData, wtName, resolved.Name,
			"no colour rules are configured for %s", wtName)
	}
	return pred, Confidence(colour.Distance(bestRGB, resolved.RGB)), nil
}
