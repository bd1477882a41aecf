// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// table.go implements the rule lookup table: an exact-match tree over an
// ordered list of categorical features. Each level tests one feature for
// equality (after case folding). A missing child at any level is a miss;
// there is no default branch.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/models"
)

// Feature names of the colour rule table, in lookup order.
const (
	FeatureWeddingType = "wedding_type"
	FeatureBrideColour = "bride_colour"
)

var errDuplicateKey = errors.New("duplicate rule key")

// Prediction is a rule table leaf: the companion colour vector stored for
// one key.
type Prediction struct {
	Rule models.ColourRule
}

// RuleTable is immutable once built and safe for concurrent lookups.
type RuleTable struct {
	features   []string
	root       *tableNode
	size       int
	skipped    int
	duplicates int
}

type tableNode struct {
	value    string // canonical value as first inserted
	children map[string]*tableNode
	leaf     *Prediction
}

// NewRuleTable creates an empty table keyed by the given ordered features.
func NewRuleTable(features ...string) *RuleTable {
	return &RuleTable{
		features: features,
		root:     &tableNode{children: make(map[string]*tableNode)},
	}
}

// BuildRuleTable groups rows by wedding type and then bride colour. Rows
// whose bride colour is restricted for their wedding type are dropped even
// though the store should never contain them. Duplicate keys keep the
// first row.
func BuildRuleTable(rows []models.ColourRule, restricted func(weddingType, colourName string) bool) *RuleTable {
	t := NewRuleTable(FeatureWeddingType, FeatureBrideColour)
	for _, row := range rows {
		if restricted != nil && restricted(row.WeddingType, row.BrideColour) {
			t.skipped++
			slog.Warn("colour rule skipped: bride colour is restricted",
				"wedding_type", row.WeddingType,
				"bride_colour", row.BrideColour,
			)
			continue
		}
		err := t.Insert(Prediction{Rule: row}, row.WeddingType, row.BrideColour)
		if errors.Is(err, errDuplicateKey) {
			t.duplicates++
			slog.Warn("colour rule skipped: duplicate key",
				"wedding_type", row.WeddingType,
				"bride_colour", row.BrideColour,
			)
			continue
		}
		if err != nil {
			t.skipped++
			slog.Warn("colour rule skipped", "error", err)
		}
	}
	return t
}

// Insert adds a leaf at the path given by values, one per feature.
func (t *RuleTable) Insert(p Prediction, values ...string) error {
	if len(values) != len(t.features) {
		return fmt.Errorf("insert rule: got %d values for %d features", len(values), len(t.features))
	}
	node := t.root
	for _, v := range values {
		k := colour.Key(v)
		child, ok := node.children[k]
		if !ok {
			child = &tableNode{value: v, children: make(map[string]*tableNode)}
			node.children[k] = child
		}
		node = child
	}
	if node.leaf != nil {
		return errDuplicateKey
	}
	node.leaf = &p
	t.size++
	return nil
}

// Lookup walks the table with one value per feature. It reports false when
// any level has no matching child or the value count is wrong.
func (t *RuleTable) Lookup(values ...string) (Prediction, bool) {
	if len(values) != len(t.features) {
		return Prediction{}, false
	}
	node := t.find(values)
	if node == nil || node.leaf == nil {
		return Prediction{}, false
	}
	return *node.leaf, true
}

// Children returns the canonical values present at the level below prefix,
// sorted. Children() lists wedding types; Children(wt) lists the bride
// colours that have a rule for wt.
func (t *RuleTable) Children(prefix ...string) []string {
	if len(prefix) >= len(t.features) {
		return nil
	}
	node := t.find(prefix)
	if node == nil {
		return nil
	}
	out := make([]string, 0, len(node.children))
	for _, c := range node.children {
		out = append(out, c.value)
	}
	sort.Strings(out)
	return out
}

func (t *RuleTable) find(values []string) *tableNode {
	node := t.root
	for _, v := range values {
		child, ok := node.children[colour.Key(v)]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Features returns the ordered feature names of the table.
func (t *RuleTable) Features() []string {
	return append([]string(nil), t.features...)
}

// Len returns the number of leaves.
func (t *RuleTable) Len() int { return t.size }

// Skipped returns how many rows were dropped as restricted or malformed.
func (t *RuleTable) Skipped() int { return t.skipped }

// Duplicates returns how many rows were dropped as duplicate keys.
func (t *RuleTable) Duplicates() int { return t.duplicates }
