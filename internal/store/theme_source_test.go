// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/engine"
	"weddingplanner/internal/models"
)

func uniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

func TestWeddingTypeStoreUpsertAndDelete(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewWeddingTypeStore(db)
	name := uniqueName("Store Test Wedding")
	testWeddingType(t, db, name)

	got, err := s.FindByName(ctx, name)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if got == nil || !got.IsActive {
		t.Fatalf("FindByName = %+v", got)
	}

	updated, err := s.Upsert(ctx, &models.WeddingType{Name: name, Description: "changed", IsActive: false})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if updated.Description != "changed" || updated.IsActive {
		t.Errorf("Upsert = %+v", updated)
	}

	active, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, wt := range active {
		if wt.Name == name {
			t.Error("inactive wedding type listed as active")
		}
	}

	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, name); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
	if got, _ := s.FindByName(ctx, name); got != nil {
		t.Error("wedding type still present after Delete")
	}
}

func TestUpsertIgnoresNameCase(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	name := uniqueName("Case Test Wedding")
	testWeddingType(t, db, name)

	types := NewWeddingTypeStore(db)
	saved, err := types.Upsert(ctx, &models.WeddingType{Name: strings.ToLower(name), Description: "lower", IsActive: true})
	if err != nil {
		t.Fatalf("Upsert lower-case type: %v", err)
	}
	if saved.Name != name || saved.Description != "lower" {
		t.Errorf("Upsert = %+v, want the stored spelling %q updated", saved, name)
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wedding_types WHERE lower(name) = lower($1)", name).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("wedding type rows = %d, want 1", n)
	}

	colours := NewCulturalColourStore(db)
	if _, err := colours.Upsert(ctx, &models.CulturalColour{WeddingType: name, Name: "Gold", RGB: colour.RGB{R: 212, G: 175, B: 55}}); err != nil {
		t.Fatalf("Upsert Gold: %v", err)
	}
	again, err := colours.Upsert(ctx, &models.CulturalColour{WeddingType: name, Name: "gold", RGB: colour.RGB{R: 255, G: 215}})
	if err != nil {
		t.Fatalf("Upsert gold: %v", err)
	}
	if again.Name != "Gold" || again.RGB != (colour.RGB{R: 255, G: 215}) {
		t.Errorf("Upsert gold = %+v", again)
	}
	list, err := colours.ListByWeddingType(ctx, name)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("cultural colours = %d, want 1", len(list))
	}

	if err := colours.Delete(ctx, name, "GOLD"); err != nil {
		t.Errorf("Delete GOLD: %v", err)
	}
	if got, _ := types.FindByName(ctx, strings.ToUpper(name)); got == nil || got.Name != name {
		t.Errorf("FindByName upper-case = %+v", got)
	}
}

func TestColourRuleStoreRejectsBadBrideColour(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	name := uniqueName("Rule Test Wedding")
	testWeddingType(t, db, name)

	colours := NewCulturalColourStore(db)
	if _, err := colours.Upsert(ctx, &models.CulturalColour{WeddingType: name, Name: "black", RGB: colour.RGB{}}); err != nil {
		t.Fatalf("Upsert colour: %v", err)
	}
	if err := NewRestrictedColourStore(db).Add(ctx, &models.RestrictedColour{WeddingType: name, Name: "Black"}); err != nil {
		t.Fatalf("Add restricted: %v", err)
	}

	rules := NewColourRuleStore(db)
	rule := models.ColourRule{
		WeddingType: name, GroomColour: "a", BridesmaidsColour: "b",
		BestMenColour: "c", FlowerDecoColour: "d", HallDecorColour: "e",
	}

	rule.BrideColour = "black"
	if _, err := rules.Upsert(ctx, &rule); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("restricted bride colour: error = %v, want ErrInvalidReference", err)
	}
	rule.BrideColour = "purple"
	if _, err := rules.Upsert(ctx, &rule); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("unknown bride colour: error = %v, want ErrInvalidReference", err)
	}
}

func TestCulturalColourStoreUnknownWeddingType(t *testing.T) {
	db := testDB(t)
	_, err := NewCulturalColourStore(db).Upsert(context.Background(), &models.CulturalColour{
		WeddingType: uniqueName("Missing Wedding"),
		Name:        "red",
		RGB:         colour.RGB{R: 255},
	})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("error = %v, want ErrInvalidReference", err)
	}
}

// TestEngineSourceRoundTrip writes a small rule set through the stores and
// predicts from it with the engine.
func TestEngineSourceRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ts := NewThemeSource(db)
	name := uniqueName("Source Test Wedding")
	testWeddingType(t, db, name)

	sig := "Joy"
	for _, c := range []models.CulturalColour{
		{WeddingType: name, Name: "cream", RGB: colour.RGB{R: 255, G: 253, B: 208}},
		{WeddingType: name, Name: "gold", RGB: colour.RGB{R: 255, G: 215, B: 0}, CulturalSignificance: &sig},
		{WeddingType: name, Name: "black", RGB: colour.RGB{}},
	} {
		if _, err := ts.CulturalColours.Upsert(ctx, &c); err != nil {
			t.Fatalf("Upsert colour %q: %v", c.Name, err)
		}
	}
	if err := ts.RestrictedColours.Add(ctx, &models.RestrictedColour{WeddingType: name, Name: "black"}); err != nil {
		t.Fatalf("Add restricted: %v", err)
	}
	if _, err := ts.ColourRules.Upsert(ctx, &models.ColourRule{
		WeddingType: name, BrideColour: "cream", GroomColour: "gold",
		BridesmaidsColour: "cream", BestMenColour: "gold",
		FlowerDecoColour: "cream and gold", HallDecorColour: "gold",
	}); err != nil {
		t.Fatalf("Upsert rule: %v", err)
	}
	if _, err := ts.FoodLocations.Upsert(ctx, &models.FoodLocation{
		WeddingType: name, FoodMenu: "Rice", Drinks: "Tea", PreShootLocations: "Beach",
	}); err != nil {
		t.Fatalf("Upsert food: %v", err)
	}

	eng := engine.New(ts.Source())
	rec, err := eng.Predict(ctx, name, "gold")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if rec.Match != engine.MatchFallback || rec.RuleBrideColour != "cream" {
		t.Errorf("match %q rule %q, want fallback to cream", rec.Match, rec.RuleBrideColour)
	}
	if rec.Confidence <= 0 || rec.Confidence >= 1 {
		t.Errorf("confidence = %v", rec.Confidence)
	}
	if rec.CulturalSignificance == nil || *rec.CulturalSignificance != "Joy" {
		t.Errorf("significance = %v", rec.CulturalSignificance)
	}
	if rec.FoodMenu == nil || *rec.FoodMenu != "Rice" {
		t.Errorf("food menu = %v", rec.FoodMenu)
	}

	if _, err := eng.Predict(ctx, name, "black"); err != nil {
		t.Errorf("restricted input should be substituted, got %v", err)
	}

	// Renaming the wedding type cascades to every child table.
	renamed := name + " Renamed"
	t.Cleanup(func() { db.Exec("DELETE FROM wedding_types WHERE name = $1", renamed) })
	if _, err := db.Exec(`UPDATE wedding_types SET name = $1 WHERE name = $2`, renamed, name); err != nil {
		t.Fatalf("rename: %v", err)
	}
	rules, err := ts.ColourRules.ListByWeddingType(ctx, renamed)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 {
		t.Errorf("rules after rename = %d, want 1", len(rules))
	}
}
