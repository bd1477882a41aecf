// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache_log.go records rule-table writes that invalidated the theme
// snapshot, for audit and debugging. Each entry captures which row
// changed, when, and how (upsert/delete/rebuild).
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Entity types recorded in the invalidation log.
const (
	EntityWeddingType      = "wedding_type"
	EntityCulturalColour   = "cultural_colour"
	EntityRestrictedColour = "restricted_colour"
	EntityColourRule       = "colour_rule"
	EntityFoodLocation     = "food_location"
	EntityColourMapping    = "colour_mapping"
	EntitySnapshot         = "snapshot"
)

// Actions recorded in the invalidation log.
const (
	ActionUpsert  = "upsert"
	ActionDelete  = "delete"
	ActionRebuild = "rebuild"
)

// CacheLogStore handles cache invalidation log operations.
type CacheLogStore struct {
	db *sql.DB
}

// NewCacheLogStore creates a new CacheLogStore.
func NewCacheLogStore(db *sql.DB) *CacheLogStore {
	return &CacheLogStore{db: db}
}

// Log records an invalidation event. entityKey identifies the row, e.g.
// "Kandyan Sinhala Wedding/white".
func (s *CacheLogStore) Log(ctx context.Context, entityType, entityKey, action string) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_invalidation_log (entity_type, entity_key, action)
		VALUES ($1, $2, $3)
	`, entityType, entityKey, action)
	if err != nil {
		// Best-effort: a failed audit row never fails the write.
		slog.Warn("failed to log cache invalidation",
			"entity_type", entityType,
			"entity_key", entityKey,
			"action", action,
			"error", err,
		)
		return
	}
	slog.Debug("cache invalidation logged",
		"entity_type", entityType,
		"entity_key", entityKey,
		"action", action,
	)
}

// RecentEntries returns the most recent invalidation events, newest first.
func (s *CacheLogStore) RecentEntries(ctx context.Context, limit int) ([]CacheLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entity_type, entity_key, action, invalidated_at
		FROM cache_invalidation_log
		ORDER BY invalidated_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query cache log: %w", err)
	}
	defer rows.Close()

	var entries []CacheLogEntry
	for rows.Next() {
		var e CacheLogEntry
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityKey, &e.Action, &e.InvalidatedAt); err != nil {
			return nil, fmt.Errorf("scan cache log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CacheLogEntry represents a single cache invalidation event.
type CacheLogEntry struct {
	ID            int64     `json:"id"`
	EntityType    string    `json:"entity_type"`
	EntityKey     string    `json:"entity_key"`
	Action        string    `json:"action"`
	InvalidatedAt time.Time `json:"invalidated_at"`
}
