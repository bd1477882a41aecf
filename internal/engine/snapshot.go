// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/models"
)

// Source is the read side of the rule store. The engine never writes.
type Source interface {
	ActiveWeddingTypes(ctx context.Context) ([]models.WeddingType, error)
	CulturalColours(ctx context.Context, weddingType string) ([]models.CulturalColour, error)
	RestrictedColours(ctx context.Context, weddingType string) ([]string, error)
	ColourRules(ctx context.Context) ([]models.ColourRule, error)
	FoodLocation(ctx context.Context, weddingType string) (*models.FoodLocation, error)
	ColourMappings(ctx context.Context) ([]models.ColourMapping, error)
}

// Snapshot is an immutable, fully indexed copy of the rule tables. All
// prediction work runs against one snapshot, so a request never observes
// a half-applied admin write.
type Snapshot struct {
	Version     uint64
	Fingerprint string
	BuiltAt     time.Time
	BuildTime   time.Duration

	types    map[string]*typeEntry // keyed by colour.Key(name)
	names    []string              // canonical type names, sorted
	table    *RuleTable
	mappings map[string]colour.RGB
	anyType  map[string]colour.RGB // cultural colour RGB by name across types
}

// typeEntry indexes one active wedding type.
type typeEntry struct {
	info       models.WeddingType
	colours    []models.CulturalColour // all rows, sorted by Name
	byKey      map[string]models.CulturalColour
	restricted map[string]string       // key -> stored restricted name
	eligible   []models.CulturalColour // non-restricted, sorted by Name
	eligByKey  map[string]models.CulturalColour
	food       *models.FoodLocation
}

func (te *typeEntry) isRestricted(name string) bool {
	_, ok := te.restricted[colour.Key(name)]
	return ok
}

// snapshotData is the raw row set a snapshot is built from.
type snapshotData struct {
	types      []models.WeddingType
	colours    map[string][]models.CulturalColour
	restricted map[string][]string
	food       map[string]*models.FoodLocation
	rules      []models.ColourRule
	mappings   []models.ColourMapping
}

func loadSnapshotData(ctx context.Context, src Source) (*snapshotData, error) {
	types, err := src.ActiveWeddingTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load wedding types: %w", err)
	}

	d := &snapshotData{
		types:      types,
		colours:    make(map[string][]models.CulturalColour, len(types)),
		restricted: make(map[string][]string, len(types)),
		food:       make(map[string]*models.FoodLocation, len(types)),
	}

	for _, wt := range types {
		cols, err := src.CulturalColours(ctx, wt.Name)
		if err != nil {
			return nil, fmt.Errorf("load cultural colours for %q: %w", wt.Name, err)
		}
		d.colours[wt.Name] = cols

		restricted, err := src.RestrictedColours(ctx, wt.Name)
		if err != nil {
			return nil, fmt.Errorf("load restricted colours for %q: %w", wt.Name, err)
		}
		d.restricted[wt.Name] = restricted

		food, err := src.FoodLocation(ctx, wt.Name)
		if err != nil {
			return nil, fmt.Errorf("load food location for %q: %w", wt.Name, err)
		}
		d.food[wt.Name] = food
	}

	if d.rules, err = src.ColourRules(ctx); err != nil {
		return nil, fmt.Errorf("load colour rules: %w", err)
	}
	if d.mappings, err = src.ColourMappings(ctx); err != nil {
		return nil, fmt.Errorf("load colour mappings: %w", err)
	}
	return d, nil
}

func buildSnapshot(d *snapshotData, version uint64) *Snapshot {
	s := &Snapshot{
		Version:  version,
		BuiltAt:  time.Now(),
		types:    make(map[string]*typeEntry, len(d.types)),
		mappings: make(map[string]colour.RGB, len(d.mappings)),
		anyType:  make(map[string]colour.RGB),
	}

	// Names that fold to the same key collide. Sorting first makes the
	// survivor independent of store order.
	types := append([]models.WeddingType(nil), d.types...)
	sort.SliceStable(types, func(i, j int) bool { return types[i].Name < types[j].Name })

	ignored := make(map[string]bool)
	for _, wt := range types {
		if kept, dup := s.types[colour.Key(wt.Name)]; dup {
			slog.Warn("wedding type name collides with another type, ignoring it",
				"wedding_type", wt.Name,
				"kept", kept.info.Name,
			)
			ignored[wt.Name] = true
			continue
		}
		te := &typeEntry{
			info:       wt,
			byKey:      make(map[string]models.CulturalColour),
			restricted: make(map[string]string),
			eligByKey:  make(map[string]models.CulturalColour),
			food:       d.food[wt.Name],
		}
		for _, r := range d.restricted[wt.Name] {
			te.restricted[colour.Key(r)] = r
		}

		colours := append([]models.CulturalColour(nil), d.colours[wt.Name]...)
		sort.Slice(colours, func(i, j int) bool { return colours[i].Name < colours[j].Name })
		for _, c := range colours {
			k := colour.Key(c.Name)
			if kept, dup := te.byKey[k]; dup {
				slog.Warn("cultural colour name collides with another colour, ignoring it",
					"wedding_type", wt.Name,
					"colour", c.Name,
					"kept", kept.Name,
				)
				continue
			}
			te.byKey[k] = c
			te.colours = append(te.colours, c)
			if !te.isRestricted(c.Name) {
				te.eligible = append(te.eligible, c)
				te.eligByKey[k] = c
			}
		}

		s.types[colour.Key(wt.Name)] = te
		s.names = append(s.names, wt.Name)
	}
	sort.Strings(s.names)

	// Cross-type RGB index: the lexicographically first wedding type wins.
	for _, name := range s.names {
		for _, c := range s.types[colour.Key(name)].colours {
			k := colour.Key(c.Name)
			if _, ok := s.anyType[k]; !ok {
				s.anyType[k] = c.RGB
			}
		}
	}

	for _, m := range d.mappings {
		s.mappings[colour.Key(m.Name)] = m.RGB
	}

	var rules []models.ColourRule
	for _, r := range d.rules {
		if _, ok := s.types[colour.Key(r.WeddingType)]; ok && !ignored[r.WeddingType] {
			rules = append(rules, r)
		}
	}
	s.table = BuildRuleTable(rules, func(weddingType, colourName string) bool {
		te, ok := s.types[colour.Key(weddingType)]
		return ok && te.isRestricted(colourName)
	})

	s.Fingerprint = fingerprint(d)
	return s
}

// fingerprint hashes the row set so that two instances holding the same
// data agree on a cache namespace.
func fingerprint(d *snapshotData) string {
	h := xxhash.New()
	field := func(parts ...string) {
		for _, p := range parts {
			io.WriteString(h, p)
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}

	types := append([]models.WeddingType(nil), d.types...)
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	for _, wt := range types {
		field("type", wt.Name)

		cols := append([]models.CulturalColour(nil), d.colours[wt.Name]...)
		sort.Slice(cols, func(i, j int) bool { return cols[i].Name < cols[j].Name })
		for _, c := range cols {
			sig := ""
			if c.CulturalSignificance != nil {
				sig = *c.CulturalSignificance
			}
			field("colour", c.Name, c.RGB.String(), sig)
		}

		restricted := append([]string(nil), d.restricted[wt.Name]...)
		sort.Strings(restricted)
		field(append([]string{"restricted"}, restricted...)...)

		if f := d.food[wt.Name]; f != nil {
			field("food", f.FoodMenu, f.Drinks, f.PreShootLocations)
		}
	}

	rules := append([]models.ColourRule(nil), d.rules...)
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].WeddingType != rules[j].WeddingType {
			return rules[i].WeddingType < rules[j].WeddingType
		}
		return rules[i].BrideColour < rules[j].BrideColour
	})
	for _, r := range rules {
		field("rule", r.WeddingType, r.BrideColour, r.GroomColour, r.BridesmaidsColour,
			r.BestMenColour, r.FlowerDecoColour, r.HallDecorColour)
	}

	mappings := append([]models.ColourMapping(nil), d.mappings...)
	sort.Slice(mappings, func(i, j int) bool { return mappings[i].Name < mappings[j].Name })
	for _, m := range mappings {
		field("mapping", m.Name, m.RGB.String())
	}

	return strconv.FormatUint(h.Sum64(), 16)
}

func (s *Snapshot) weddingType(raw string) (*typeEntry, error) {
	te, ok := s.types[colour.Key(raw)]
	if !ok {
		return nil, newError(ErrUnknownWeddingType, raw, "",
			"wedding type %q is not available", raw)
	}
	return te, nil
}

// WeddingTypeNames returns the canonical names of all active wedding types.
func (s *Snapshot) WeddingTypeNames() []string {
	return append([]string(nil), s.names...)
}

// Table exposes the snapshot's rule table.
func (s *Snapshot) Table() *RuleTable {
	return s.table
}
