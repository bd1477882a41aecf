package engine

import (
	"errors"
	"math"
	"testing"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/models"
)

func TestPredictExactRule(t *testing.T) {
	snap := mustSnapshot(newFixture())

	rec, err := snap.Predict(kandyan, "white")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if rec.Confidence != 1.0 || rec.Match != MatchExact {
		t.Errorf("confidence %v match %q, want 1 exact", rec.Confidence, rec.Match)
	}
	if rec.Substituted || rec.RestrictionMessage != nil {
		t.Errorf("direct match flagged as substituted: %+v", rec)
	}
	if rec.WeddingType != kandyan || rec.RuleBrideColour != "white" {
		t.Errorf("wedding type %q rule bride %q", rec.WeddingType, rec.RuleBrideColour)
	}
	if rec.BrideColour.Hex == nil || *rec.BrideColour.Hex != "#FFFFFF" {
		t.Errorf("bride hex = %v", rec.BrideColour.Hex)
	}

	if rec.GroomColour.Name != "gold" || rec.GroomColour.Hex == nil || *rec.GroomColour.Hex != "#D4AF37" {
		t.Errorf("groom = %+v", rec.GroomColour)
	}
	if rec.BridesmaidsColour.Name != "pink" || rec.BestMenColour.Name != "cream" {
		t.Errorf("bridesmaids %q best men %q", rec.BridesmaidsColour.Name, rec.BestMenColour.Name)
	}

	flower := rec.FlowerDecoColour
	if len(flower.Swatches) != 2 {
		t.Fatalf("flower swatches = %+v, want 2", flower.Swatches)
	}
	if flower.Hex == nil || *flower.Hex != "#EAD79B" {
		t.Errorf("composite flower hex = %v, want mean of parts", flower.Hex)
	}

	if !rec.HallDecorColour.IsRestricted {
		t.Error("hall decor 'maroon' should be flagged restricted")
	}
	if rec.Companion(models.RoleHallDecor).Name != "maroon" {
		t.Errorf("Companion(hall_decor) = %+v", rec.Companion(models.RoleHallDecor))
	}

	if rec.CulturalSignificance == nil || *rec.CulturalSignificance != "Purity and new beginnings" {
		t.Errorf("significance = %v", rec.CulturalSignificance)
	}
	if rec.FoodMenu == nil || *rec.FoodMenu != "Kiribath, kavum" {
		t.Errorf("food menu = %v", rec.FoodMenu)
	}
	if rec.Snapshot != snap.Fingerprint {
		t.Errorf("snapshot = %q, want %q", rec.Snapshot, snap.Fingerprint)
	}
}

// TestPredictEveryRuleIsExact checks that every stored rule is reachable
// with confidence 1.
func TestPredictEveryRuleIsExact(t *testing.T) {
	snap := mustSnapshot(newFixture())
	for _, wt := range snap.table.Children() {
		for _, bride := range snap.table.Children(wt) {
			rec, err := snap.Predict(wt, bride)
			if err != nil {
				t.Errorf("Predict(%q, %q): %v", wt, bride, err)
				continue
			}
			if rec.Confidence != 1.0 || rec.Match != MatchExact {
				t.Errorf("Predict(%q, %q): confidence %v match %q", wt, bride, rec.Confidence, rec.Match)
			}
		}
	}
}

func TestPredictRestrictedSubstitution(t *testing.T) {
	snap := mustSnapshot(newFixture())

	rec, err := snap.Predict(kandyan, "black")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if rec.BrideColour.Name != "gold" || rec.BrideColour.IsRestricted {
		t.Errorf("bride colour = %+v", rec.BrideColour)
	}
	if !rec.Substituted || rec.RestrictionMessage == nil {
		t.Fatalf("substituted %v message %v", rec.Substituted, rec.RestrictionMessage)
	}
	if rec.Input != "black" {
		t.Errorf("input = %q", rec.Input)
	}
	// The stored rule keyed on restricted black must never be used.
	if rec.RuleBrideColour == "black" || rec.GroomColour.Name == "black" {
		t.Errorf("restricted rule leaked: %+v", rec)
	}
}

func TestPredictFallback(t *testing.T) {
	snap := mustSnapshot(newFixture())

	rec, err := snap.Predict(tamil, "gold")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if rec.Match != MatchFallback || rec.RuleBrideColour != "cream" {
		t.Errorf("match %q rule bride %q, want fallback to cream", rec.Match, rec.RuleBrideColour)
	}
	if rec.Confidence <= 0 || rec.Confidence >= 1 {
		t.Errorf("confidence %v, want strictly between 0 and 1", rec.Confidence)
	}
	gold := colour.RGB{R: 255, G: 215, B: 0}
	cream := colour.RGB{R: 255, G: 253, B: 208}
	want := 1 - colour.Distance(gold, cream)/colour.MaxDistance
	if math.Abs(rec.Confidence-want) > 1e-9 {
		t.Errorf("confidence %v, want %v", rec.Confidence, want)
	}
	if rec.BrideColour.Name != "gold" || rec.Substituted {
		t.Errorf("bride %q substituted %v", rec.BrideColour.Name, rec.Substituted)
	}
	if rec.FlowerDecoColour.Hex != nil {
		t.Errorf("unknown companion colour should have no hex, got %q", *rec.FlowerDecoColour.Hex)
	}
	if n := len(rec.HallDecorColour.Swatches); n != 2 {
		t.Errorf("hall decor swatches = %d, want 2", n)
	}
}

func TestPredictFallbackAtZeroDistance(t *testing.T) {
	snap := mustSnapshot(newFixture())

	rec, err := snap.Predict(christian, "ivory")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if rec.Match != MatchFallback || rec.Confidence != 1.0 {
		t.Errorf("match %q confidence %v, want fallback with 1.0", rec.Match, rec.Confidence)
	}
	if rec.RuleBrideColour != "cream white" {
		t.Errorf("rule bride = %q", rec.RuleBrideColour)
	}
	if rec.FoodMenu != nil || rec.Drinks != nil || rec.PreShootLocations != nil {
		t.Error("missing food data should stay nil")
	}
}

func TestPredictNoRuleData(t *testing.T) {
	snap := mustSnapshot(newFixture())

	_, err := snap.Predict(muslim, "green")
	if !errors.Is(err, ErrNoRuleData) {
		t.Fatalf("error = %v, want ErrNoRuleData", err)
	}
	var engErr *Error
	if errors.As(err, &engErr) && engErr.WeddingType != muslim {
		t.Errorf("error wedding type = %q", engErr.WeddingType)
	}
}

func TestFallbackIgnoresOtherWeddingTypes(t *testing.T) {
	snap := mustSnapshot(newFixture())

	// Kandyan has a white rule, but Muslim must not borrow it.
	_, _, err := snap.Fallback(muslim, models.CulturalColour{Name: "white", RGB: colour.RGB{R: 255, G: 255, B: 255}})
	if !errors.Is(err, ErrNoRuleData) {
		t.Errorf("error = %v, want ErrNoRuleData", err)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{colour.MaxDistance, 0},
		{colour.MaxDistance * 2, 0},
		{colour.MaxDistance / 2, 0.5},
	}
	for _, tt := range tests {
		if got := Confidence(tt.distance); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Confidence(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}
