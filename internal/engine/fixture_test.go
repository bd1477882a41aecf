package engine

import (
	"context"
	"errors"
	"sync"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/models"
)

// memSource is an in-memory Source for engine tests. It counts loads so
// tests can assert on rebuild behaviour.
type memSource struct {
	mu         sync.Mutex
	types      []models.WeddingType
	colours    []models.CulturalColour
	restricted []models.RestrictedColour
	rules      []models.ColourRule
	food       []models.FoodLocation
	mappings   []models.ColourMapping

	loads int
	err   error
}

func (m *memSource) ActiveWeddingTypes(_ context.Context) ([]models.WeddingType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	var out []models.WeddingType
	for _, wt := range m.types {
		if wt.IsActive {
			out = append(out, wt)
		}
	}
	return out, nil
}

func (m *memSource) CulturalColours(_ context.Context, weddingType string) ([]models.CulturalColour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CulturalColour
	for _, c := range m.colours {
		if c.WeddingType == weddingType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memSource) RestrictedColours(_ context.Context, weddingType string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, r := range m.restricted {
		if r.WeddingType == weddingType {
			out = append(out, r.Name)
		}
	}
	return out, nil
}

func (m *memSource) ColourRules(_ context.Context) ([]models.ColourRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ColourRule(nil), m.rules...), nil
}

func (m *memSource) FoodLocation(_ context.Context, weddingType string) (*models.FoodLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.food {
		if f.WeddingType == weddingType {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (m *memSource) ColourMappings(_ context.Context) ([]models.ColourMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ColourMapping(nil), m.mappings...), nil
}

func (m *memSource) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

var errStoreDown = errors.New("store down")

const (
	kandyan   = "Kandyan Sinhala Wedding"
	tamil     = "Tamil Hindu Wedding"
	muslim    = "Muslim Wedding"
	christian = "Christian Wedding"
	blocked   = "Restricted Only Wedding"
	retired   = "Retired Wedding"
)

func cc(wt, name string, r, g, b uint8, significance string) models.CulturalColour {
	c := models.CulturalColour{WeddingType: wt, Name: name, RGB: colour.RGB{R: r, G: g, B: b}}
	if significance != "" {
		c.CulturalSignificance = &significance
	}
	return c
}

func rule(wt, bride, groom, maids, men, flower, hall string) models.ColourRule {
	return models.ColourRule{
		WeddingType:       wt,
		BrideColour:       bride,
		GroomColour:       groom,
		BridesmaidsColour: maids,
		BestMenColour:     men,
		FlowerDecoColour:  flower,
		HallDecorColour:   hall,
	}
}

// newFixture returns a rule store covering every resolution path:
//   - Kandyan: exact rules, restricted black/maroon (with RGB rows), and a
//     stored rule for restricted "black" that must be ignored.
//   - Tamil: a single "cream" rule, so other colours use the fallback.
//   - Muslim: colours but no rules.
//   - Christian: two colours with identical RGB, rule on only one of them,
//     and no food row.
//   - Restricted Only: every colour restricted.
//   - Retired: inactive, with a rule that must never be used.
func newFixture() *memSource {
	return &memSource{
		types: []models.WeddingType{
			{Name: kandyan, Description: "Up-country Buddhist ceremony", IsActive: true},
			{Name: tamil, Description: "Hindu Tamil ceremony", IsActive: true},
			{Name: muslim, Description: "Nikah ceremony", IsActive: true},
			{Name: christian, Description: "Church ceremony", IsActive: true},
			{Name: blocked, Description: "Misconfigured", IsActive: true},
			{Name: retired, Description: "No longer offered", IsActive: false},
		},
		colours: []models.CulturalColour{
			cc(kandyan, "white", 255, 255, 255, "Purity and new beginnings"),
			cc(kandyan, "cream", 255, 253, 208, ""),
			cc(kandyan, "gold", 212, 175, 55, "Prosperity"),
			cc(kandyan, "coral red", 248, 131, 121, "Joy"),
			cc(kandyan, "pink", 255, 192, 203, ""),
			cc(kandyan, "black", 0, 0, 0, ""),
			cc(kandyan, "maroon", 128, 0, 0, ""),

			cc(tamil, "red", 255, 0, 0, "Fertility"),
			cc(tamil, "gold", 255, 215, 0, "Wealth"),
			cc(tamil, "cream", 255, 253, 208, "Grace"),
			cc(tamil, "white", 255, 255, 255, ""),

			cc(muslim, "green", 0, 128, 0, ""),
			cc(muslim, "white", 255, 255, 255, ""),

			cc(christian, "ivory", 255, 255, 240, ""),
			cc(christian, "cream white", 255, 255, 240, ""),

			cc(blocked, "black", 0, 0, 0, ""),

			cc(retired, "white", 255, 255, 255, ""),
		},
		restricted: []models.RestrictedColour{
			{WeddingType: kandyan, Name: "black"},
			{WeddingType: kandyan, Name: "Maroon"},
			{WeddingType: tamil, Name: "white"},
			{WeddingType: tamil, Name: "black"},
			{WeddingType: blocked, Name: "black"},
		},
		rules: []models.ColourRule{
			rule(kandyan, "white", "gold", "pink", "cream", "white and gold", "maroon"),
			rule(kandyan, "cream", "gold", "coral red", "white", "cream", "gold"),
			rule(kandyan, "gold", "white", "cream", "gold", "white", "white and gold"),
			rule(kandyan, "coral red", "cream", "gold", "cream", "pink", "white"),
			rule(kandyan, "black", "black", "black", "black", "black", "black"),
			rule(tamil, "cream", "gold", "red", "cream", "jasmine white", "red and gold"),
			rule(christian, "cream white", "navy", "ivory", "navy", "white", "ivory"),
			rule(retired, "white", "white", "white", "white", "white", "white"),
		},
		food: []models.FoodLocation{
			{WeddingType: kandyan, FoodMenu: "Kiribath, kavum", Drinks: "King coconut", PreShootLocations: "Kandy Lake"},
			{WeddingType: tamil, FoodMenu: "Vegetarian sadhya", Drinks: "Panakam", PreShootLocations: "Jaffna Fort"},
			{WeddingType: muslim, FoodMenu: "Biryani", Drinks: "Faluda", PreShootLocations: "Galle Face"},
		},
		mappings: []models.ColourMapping{
			{Name: "blush", RGB: colour.RGB{R: 222, G: 93, B: 131}},
		},
	}
}

func newTestEngine() (*Engine, *memSource) {
	src := newFixture()
	return New(src), src
}

func mustSnapshot(src Source) *Snapshot {
	d, err := loadSnapshotData(context.Background(), src)
	if err != nil {
		panic(err)
	}
	return buildSnapshot(d, 1)
}
