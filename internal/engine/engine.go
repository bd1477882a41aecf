// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine is the theme recommendation engine. Given a wedding type
// and a bride's dress colour it resolves the colour against the wedding
// type's cultural colours (honouring restrictions), looks up the matching
// colour rule (or the nearest rule-bearing colour) and assembles the
// companion colours, food and venue suggestions with a confidence score.
//
// All computation runs on an immutable Snapshot of the rule tables. The
// Engine owns the current snapshot and rebuilds it from a Source.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"weddingplanner/internal/colour"
	"weddingplanner/internal/metrics"
	"weddingplanner/internal/models"
)

// maxRebuildRounds bounds how often Rebuild repeats when invalidations keep
// arriving while it reads the store.
const maxRebuildRounds = 3

// Engine serves predictions from the current rule snapshot.
type Engine struct {
	source Source
	cache  snapshotCache
	group  singleflight.Group
}

// New creates an engine reading from source. The first snapshot is built
// lazily on first use, or eagerly with Rebuild.
func New(source Source) *Engine {
	return &Engine{source: source}
}

// Rebuild reloads the rule tables and atomically swaps in a new snapshot.
// Concurrent calls share one load.
func (e *Engine) Rebuild(ctx context.Context) (*Snapshot, error) {
	var (
		snap *Snapshot
		err  error
	)
	for i := 0; i < maxRebuildRounds; i++ {
		snap, err = e.rebuildOnce(ctx)
		if err != nil {
			return nil, err
		}
		if _, stale := e.cache.get(); !stale {
			break
		}
	}
	return snap, nil
}

func (e *Engine) rebuildOnce(ctx context.Context) (*Snapshot, error) {
	v, err, _ := e.group.Do("rebuild", func() (any, error) {
		start := time.Now()
		version := e.cache.beginBuild()

		data, err := loadSnapshotData(ctx, e.source)
		if err != nil {
			e.cache.invalidate()
			metrics.SnapshotRebuilds.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("rebuild theme snapshot: %w", err)
		}

		snap := buildSnapshot(data, version)
		snap.BuildTime = time.Since(start)
		e.cache.put(snap)

		metrics.SnapshotRebuilds.WithLabelValues("ok").Inc()
		metrics.SnapshotBuildDuration.Observe(snap.BuildTime.Seconds())
		metrics.SnapshotRules.Set(float64(snap.table.Len()))

		slog.Info("theme snapshot rebuilt",
			"version", snap.Version,
			"fingerprint", snap.Fingerprint,
			"wedding_types", len(snap.names),
			"rules", snap.table.Len(),
			"skipped_rules", snap.table.Skipped()+snap.table.Duplicates(),
			"duration", snap.BuildTime.String(),
		)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Invalidate marks the current snapshot stale; the next request rebuilds it.
func (e *Engine) Invalidate() {
	e.cache.invalidate()
}

// Snapshot returns the current snapshot, rebuilding it first if it is
// missing or stale.
func (e *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s, stale := e.cache.get(); !stale {
		return s, nil
	}
	return e.Rebuild(ctx)
}

// Predict recommends a theme for the given wedding type and bride colour.
// Failures are *Error values wrapping one of the Err* kinds, or a wrapped
// store error when the snapshot could not be loaded.
func (e *Engine) Predict(ctx context.Context, weddingType, brideColour string) (*Recommendation, error) {
	start := time.Now()
	defer func() { metrics.PredictLatency.Observe(time.Since(start).Seconds()) }()

	snap, err := e.Snapshot(ctx)
	if err != nil {
		metrics.Predictions.WithLabelValues("store_error").Inc()
		return nil, err
	}

	rec, err := snap.Predict(weddingType, brideColour)
	if err != nil {
		var engErr *Error
		if errors.As(err, &engErr) {
			metrics.Predictions.WithLabelValues(engErr.Code()).Inc()
		}
		slog.Debug("theme prediction failed",
			"wedding_type", weddingType,
			"bride_colour", brideColour,
			"error", err,
		)
		return nil, err
	}

	metrics.Predictions.WithLabelValues(string(rec.Match)).Inc()
	metrics.PredictionConfidence.Observe(rec.Confidence)
	return rec, nil
}

// WeddingTypeSummary describes one active wedding type and how much rule
// data it has.
type WeddingTypeSummary struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Colours           int    `json:"colours"`
	EligibleColours   int    `json:"eligible_colours"`
	RestrictedColours int    `json:"restricted_colours"`
	Rules             int    `json:"rules"`
	HasFoodLocation   bool   `json:"has_food_location"`
}

// WeddingTypes lists the active wedding types, sorted by name.
func (e *Engine) WeddingTypes(ctx context.Context) ([]WeddingTypeSummary, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]WeddingTypeSummary, 0, len(snap.names))
	for _, name := range snap.names {
		te := snap.types[colour.Key(name)]
		out = append(out, WeddingTypeSummary{
			Name:              te.info.Name,
			Description:       te.info.Description,
			Colours:           len(te.colours),
			EligibleColours:   len(te.eligible),
			RestrictedColours: len(te.restricted),
			Rules:             len(snap.table.Children(name)),
			HasFoodLocation:   te.food != nil,
		})
	}
	return out, nil
}

// AvailableColours lists the colours a bride may choose for a wedding type.
func (e *Engine) AvailableColours(ctx context.Context, weddingType string) ([]models.CulturalColour, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.AvailableColours(weddingType)
}

// Info describes the current snapshot.
type Info struct {
	Built          bool      `json:"built"`
	Stale          bool      `json:"stale"`
	Version        uint64    `json:"version"`
	Fingerprint    string    `json:"fingerprint"`
	BuiltAt        time.Time `json:"built_at"`
	BuildDuration  string    `json:"build_duration"`
	Features       []string  `json:"features"`
	WeddingTypes   int       `json:"wedding_types"`
	Rules          int       `json:"rules"`
	SkippedRules   int       `json:"skipped_rules"`
	DuplicateRules int       `json:"duplicate_rules"`
}

// Info reports on the current snapshot without triggering a rebuild.
func (e *Engine) Info() Info {
	snap, stale := e.cache.get()
	if snap == nil {
		return Info{Stale: true}
	}
	return Info{
		Built:          true,
		Stale:          stale,
		Version:        snap.Version,
		Fingerprint:    snap.Fingerprint,
		BuiltAt:        snap.BuiltAt,
		BuildDuration:  snap.BuildTime.String(),
		Features:       snap.table.Features(),
		WeddingTypes:   len(snap.names),
		Rules:          snap.table.Len(),
		SkippedRules:   snap.table.Skipped(),
		DuplicateRules: snap.table.Duplicates(),
	}
}
