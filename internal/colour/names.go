package colour

import (
	"regexp"
	"strings"
)

// componentSep splits composite names such as "Red and White", "Gold/Silver",
// "Blue & Green" or "Peach, Mint". "and" must be a whole word so that names
// like "sand" survive intact.
var componentSep = regexp.MustCompile(`(?i)\s*(?:\band\b|/|&|,)\s*`)

// SplitComponents splits a composite colour name into its parts, preserving
// the original casing of each part. A plain name yields a single element and
// a blank name yields nil.
func SplitComponents(name string) []string {
	var parts []string
	for _, p := range componentSep.Split(name, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// IsComposite reports whether name names more than one colour.
func IsComposite(name string) bool {
	return len(SplitComponents(name)) > 1
}

// palette is the built-in dictionary of common colour names. It is the last
// resort when neither the cultural colours nor the colour_mappings table know
// a name.
var palette = map[string]RGB{
	"black":       {0, 0, 0},
	"white":       {255, 255, 255},
	"gray":        {128, 128, 128},
	"grey":        {128, 128, 128},
	"maroon":      {128, 0, 0},
	"red":         {255, 0, 0},
	"green":       {0, 128, 0},
	"blue":        {0, 0, 255},
	"yellow":      {255, 255, 0},
	"orange":      {255, 165, 0},
	"pink":        {255, 192, 203},
	"purple":      {128, 0, 128},
	"brown":       {165, 42, 42},
	"navy":        {0, 0, 128},
	"navy blue":   {0, 0, 128},
	"light green": {144, 238, 144},
	"light-blue":  {173, 216, 230},
	"light blue":  {173, 216, 230},
	"cream":       {255, 255, 240},
	"ivory":       {255, 255, 240},
	"champagne":   {247, 231, 206},
	"golden":      {255, 215, 0},
	"gold":        {255, 215, 0},
	"rose gold":   {183, 110, 121},
	"teal":        {0, 128, 128},
	"turquoise":   {64, 224, 208},
	"lavender":    {230, 230, 250},
	"burgundy":    {128, 0, 32},
	"beige":       {245, 245, 220},
	"silver":      {192, 192, 192},
	"bronze":      {205, 127, 50},
	"peach":       {255, 218, 185},
	"mint":        {152, 255, 152},
	"sky blue":    {135, 206, 235},
	"baby blue":   {137, 207, 240},
	"coral":       {255, 127, 80},
	"magenta":     {255, 0, 255},
	"aqua":        {0, 255, 255},
	"violet":      {238, 130, 238},
	"plum":        {142, 69, 133},
	"charcoal":    {54, 69, 79},
	"khaki":       {195, 176, 145},
}

// Named looks up a colour name in the built-in palette.
func Named(name string) (RGB, bool) {
	c, ok := palette[Key(name)]
	return c, ok
}
