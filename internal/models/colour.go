// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "weddingplanner/internal/colour"

// CulturalColour is a named colour registered for one wedding type, with
// its RGB value and symbolic meaning. (WeddingType, Name) is unique.
type CulturalColour struct {
	WeddingType          string     `json:"wedding_type"`
	Name                 string     `json:"colour_name"`
	RGB                  colour.RGB `json:"rgb"`
	CulturalSignificance *string    `json:"cultural_significance,omitempty"`
}

// Hex returns the colour's "#RRGGBB" form.
func (c CulturalColour) Hex() string {
	return c.RGB.Hex()
}

// RestrictedColour forbids a colour name as a bride colour (and as a
// nearest-neighbour candidate) for one wedding type.
type RestrictedColour struct {
	WeddingType string `json:"wedding_type"`
	Name        string `json:"restricted_colour"`
}

// ColourMapping is a global name-to-RGB dictionary entry used to place a
// bare colour name in RGB space when it is not a cultural colour of the
// requested wedding type.
type ColourMapping struct {
	Name        string     `json:"colour_name"`
	RGB         colour.RGB `json:"rgb"`
	Description *string    `json:"description,omitempty"`
}
