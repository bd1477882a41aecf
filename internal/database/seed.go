package database

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"weddingplanner/internal/colour"
)

//go:embed seed/themes.yaml
var defaultFixture []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Fixture is the YAML document used to seed an empty rule store.
type Fixture struct {
	ColourMappings []FixtureMapping     `yaml:"colour_mappings" validate:"dive"`
	WeddingTypes   []FixtureWeddingType `yaml:"wedding_types" validate:"required,min=1,dive"`
}

type FixtureMapping struct {
	Name        string `yaml:"name" validate:"required,max=100"`
	RGB         string `yaml:"rgb" validate:"required"`
	Description string `yaml:"description"`
}

type FixtureWeddingType struct {
	Name        string          `yaml:"name" validate:"required,max=100"`
	Description string          `yaml:"description"`
	Inactive    bool            `yaml:"inactive"`
	Colours     []FixtureColour `yaml:"colours" validate:"dive"`
	Restricted  []string        `yaml:"restricted" validate:"dive,required,max=100"`
	Rules       []FixtureRule   `yaml:"rules" validate:"dive"`
	Food        *FixtureFood    `yaml:"food"`
}

type FixtureColour struct {
	Name         string `yaml:"name" validate:"required,max=100"`
	RGB          string `yaml:"rgb" validate:"required"`
	Significance string `yaml:"significance"`
}

type FixtureRule struct {
	Bride       string `yaml:"bride" validate:"required,max=100"`
	Groom       string `yaml:"groom" validate:"required,max=100"`
	Bridesmaids string `yaml:"bridesmaids" validate:"required,max=100"`
	BestMen     string `yaml:"best_men" validate:"required,max=100"`
	FlowerDeco  string `yaml:"flower_deco" validate:"required,max=100"`
	HallDecor   string `yaml:"hall_decor" validate:"required,max=100"`
}

type FixtureFood struct {
	Menu              string `yaml:"menu"`
	Drinks            string `yaml:"drinks"`
	PreShootLocations string `yaml:"pre_shoot_locations"`
}

// LoadFixture reads a seed fixture from path, or the embedded default
// fixture when path is empty.
func LoadFixture(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed fixture: %w", err)
		}
		data = b
	}
	return ParseFixture(data)
}

// ParseFixture decodes and checks a seed fixture. Unknown keys are
// rejected, every RGB must parse, and each rule's bride colour must be a
// non-restricted cultural colour of its wedding type.
func ParseFixture(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("validate seed fixture: %w", err)
	}
	if err := f.check(); err != nil {
		return nil, fmt.Errorf("validate seed fixture: %w", err)
	}
	return &f, nil
}

func (f *Fixture) check() error {
	var errs []error

	for _, m := range f.ColourMappings {
		if _, err := colour.Parse(m.RGB); err != nil {
			errs = append(errs, fmt.Errorf("colour mapping %q: %w", m.Name, err))
		}
	}

	types := make(map[string]bool)
	for _, wt := range f.WeddingTypes {
		if types[colour.Key(wt.Name)] {
			errs = append(errs, fmt.Errorf("wedding type %q listed twice", wt.Name))
		}
		types[colour.Key(wt.Name)] = true

		restricted := make(map[string]bool)
		for _, r := range wt.Restricted {
			restricted[colour.Key(r)] = true
		}

		colours := make(map[string]bool)
		for _, c := range wt.Colours {
			if _, err := colour.Parse(c.RGB); err != nil {
				errs = append(errs, fmt.Errorf("%s colour %q: %w", wt.Name, c.Name, err))
			}
			if colours[colour.Key(c.Name)] {
				errs = append(errs, fmt.Errorf("%s colour %q listed twice", wt.Name, c.Name))
			}
			colours[colour.Key(c.Name)] = true
		}

		rules := make(map[string]bool)
		for _, r := range wt.Rules {
			k := colour.Key(r.Bride)
			switch {
			case !colours[k]:
				errs = append(errs, fmt.Errorf("%s rule: bride colour %q is not a cultural colour", wt.Name, r.Bride))
			case restricted[k]:
				errs = append(errs, fmt.Errorf("%s rule: bride colour %q is restricted", wt.Name, r.Bride))
			case rules[k]:
				errs = append(errs, fmt.Errorf("%s rule: bride colour %q listed twice", wt.Name, r.Bride))
			}
			rules[k] = true
		}
	}
	return errors.Join(errs...)
}

// Seed populates an empty rule store from the fixture. It does nothing
// when any wedding type already exists, so it is safe to call on every
// start.
func Seed(ctx context.Context, db *sql.DB, f *Fixture) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wedding_types").Scan(&count); err != nil {
		return fmt.Errorf("seed check wedding types: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, m := range f.ColourMappings {
		rgb, _ := colour.Parse(m.RGB)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO colour_mappings (colour_name, r, g, b, description)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			ON CONFLICT DO NOTHING
		`, m.Name, rgb.R, rgb.G, rgb.B, m.Description); err != nil {
			return fmt.Errorf("seed colour mapping %q: %w", m.Name, err)
		}
	}

	var rules int
	for _, wt := range f.WeddingTypes {
		if err := seedWeddingType(ctx, tx, wt); err != nil {
			return err
		}
		rules += len(wt.Rules)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with default theme rules",
		"wedding_types", len(f.WeddingTypes),
		"colour_rules", rules,
		"colour_mappings", len(f.ColourMappings),
	)
	return nil
}

func seedWeddingType(ctx context.Context, tx *sql.Tx, wt FixtureWeddingType) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wedding_types (name, description, is_active)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, wt.Name, wt.Description, !wt.Inactive); err != nil {
		return fmt.Errorf("seed wedding type %q: %w", wt.Name, err)
	}

	for _, c := range wt.Colours {
		rgb, _ := colour.Parse(c.RGB)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cultural_colours (wedding_type, colour_name, r, g, b, cultural_significance)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			ON CONFLICT DO NOTHING
		`, wt.Name, c.Name, rgb.R, rgb.G, rgb.B, c.Significance); err != nil {
			return fmt.Errorf("seed cultural colour %q for %q: %w", c.Name, wt.Name, err)
		}
	}

	for _, r := range wt.Restricted {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO restricted_colours (wedding_type, restricted_colour)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, wt.Name, r); err != nil {
			return fmt.Errorf("seed restricted colour %q for %q: %w", r, wt.Name, err)
		}
	}

	for _, r := range wt.Rules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO colour_rules (wedding_type, bride_colour, groom_colour, bridesmaids_colour,
				best_men_colour, flower_deco_colour, hall_decor_colour)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT DO NOTHING
		`, wt.Name, r.Bride, r.Groom, r.Bridesmaids, r.BestMen, r.FlowerDeco, r.HallDecor); err != nil {
			return fmt.Errorf("seed colour rule %q for %q: %w", r.Bride, wt.Name, err)
		}
	}

	if wt.Food != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO food_locations (wedding_type, food_menu, drinks, pre_shoot_locations)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT DO NOTHING
		`, wt.Name, wt.Food.Menu, wt.Food.Drinks, wt.Food.PreShootLocations); err != nil {
			return fmt.Errorf("seed food location for %q: %w", wt.Name, err)
		}
	}
	return nil
}
