// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package colour holds the RGB arithmetic shared by the theme engine and
// the rule store: hex parsing and formatting, Euclidean distance, name
// normalisation, composite colour names and the built-in named palette.
package colour

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// MaxDistance is the largest possible Euclidean distance between two RGB
// colours, i.e. between black and white: sqrt(255² × 3).
var MaxDistance = math.Sqrt(3 * 255 * 255)

// hexPattern matches a full six-digit hex literal with leading '#'.
var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// RGB is a colour with 8-bit channels. The channel values are the source of
// truth; hex and triplet forms are derived from them.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// New builds an RGB from integer channels, rejecting values outside 0–255.
func New(r, g, b int) (RGB, error) {
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("rgb channel %d out of range 0-255", v)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// IsHex reports whether s is a hex literal of the form #RRGGBB.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ParseHex parses a "#RRGGBB" literal (either case) into an RGB.
func ParseHex(s string) (RGB, error) {
	if !IsHex(s) {
		return RGB{}, fmt.Errorf("invalid hex colour %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ParseTriplet parses the "r,g,b" form used by the seed fixture and the
// admin API.
func ParseTriplet(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("invalid rgb %q: want r,g,b", s)
	}
	var ch [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGB{}, fmt.Errorf("invalid rgb %q: %w", s, err)
		}
		ch[i] = n
	}
	return New(ch[0], ch[1], ch[2])
}

// Parse accepts any of the admin input forms: "r,g,b", "rgb(r, g, b)",
// "#RRGGBB" or a bare "RRGGBB".
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, fmt.Errorf("rgb value is required")
	}
	if IsHex(s) {
		return ParseHex(s)
	}
	if IsHex("#" + s) {
		return ParseHex("#" + s)
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		return ParseTriplet(s[4 : len(s)-1])
	}
	return ParseTriplet(s)
}

// Hex returns the colour as an upper-case "#RRGGBB" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns the "r,g,b" triplet form.
func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// Distance returns the Euclidean distance between a and b in RGB space.
func Distance(a, b RGB) float64 {
	return math.Sqrt(float64(SquaredDistance(a, b)))
}

// SquaredDistance is Distance without the square root. Comparisons use it
// so that equal distances compare equal exactly.
func SquaredDistance(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Average returns the channel-wise mean of cs, rounded half away from zero.
// It returns false when cs is empty.
func Average(cs ...RGB) (RGB, bool) {
	if len(cs) == 0 {
		return RGB{}, false
	}
	var r, g, b int
	for _, c := range cs {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := float64(len(cs))
	return RGB{
		R: uint8(math.Round(float64(r) / n)),
		G: uint8(math.Round(float64(g) / n)),
		B: uint8(math.Round(float64(b) / n)),
	}, true
}

// Key normalises a colour or wedding type name for comparison: surrounding
// whitespace is trimmed and the result is Unicode case-folded. Interior
// whitespace is kept, so "navy  blue" and "navy blue" stay distinct.
func Key(name string) string {
	// Casers are stateful and must not be shared between goroutines.
	return cases.Fold().String(strings.TrimSpace(name))
}

// Equal reports whether two names are the same after Key normalisation.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
