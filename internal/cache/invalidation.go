// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// invalidation.go broadcasts rule-table writes to every instance over a
// Valkey pub/sub channel. The instance that made the write has already
// rebuilt; the others mark their snapshot stale or rebuild on receipt.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"weddingplanner/internal/metrics"
)

// InvalidationChannel is the pub/sub channel carrying invalidations.
const InvalidationChannel = "weddingplanner:theme:invalidate"

// Invalidation describes one rule-table change.
type Invalidation struct {
	Origin      string    `json:"origin"`
	EntityType  string    `json:"entity_type"`
	EntityKey   string    `json:"entity_key"`
	Action      string    `json:"action"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	SentAt      time.Time `json:"sent_at"`
}

// Broadcaster publishes and receives invalidations for one instance.
type Broadcaster struct {
	client *redis.Client
	origin string
}

// NewBroadcaster creates a broadcaster with a fresh instance identity.
func NewBroadcaster(client *redis.Client) *Broadcaster {
	return &Broadcaster{client: client, origin: uuid.NewString()}
}

// Origin returns this instance's identity.
func (b *Broadcaster) Origin() string {
	return b.origin
}

// Publish announces a change. Failures are logged and returned; peers
// then converge on their next rebuild.
func (b *Broadcaster) Publish(ctx context.Context, inv Invalidation) error {
	inv.Origin = b.origin
	if inv.SentAt.IsZero() {
		inv.SentAt = time.Now().UTC()
	}
	payload, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode invalidation: %w", err)
	}
	if err := b.client.Publish(ctx, InvalidationChannel, payload).Err(); err != nil {
		slog.Warn("invalidation publish failed",
			"entity_type", inv.EntityType,
			"entity_key", inv.EntityKey,
			"error", err,
		)
		return fmt.Errorf("publish invalidation: %w", err)
	}
	metrics.Invalidations.WithLabelValues("sent").Inc()
	return nil
}

// Listen subscribes to the invalidation channel and calls handle for each
// message from another instance. ready, if not nil, is closed once the
// subscription is active. Listen blocks until ctx is cancelled.
func (b *Broadcaster) Listen(ctx context.Context, ready chan<- struct{}, handle func(context.Context, Invalidation)) error {
	sub := b.client.Subscribe(ctx, InvalidationChannel)
	defer sub.Close()

	// Wait for the subscription confirmation before reporting ready.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", InvalidationChannel, err)
	}
	if ready != nil {
		close(ready)
	}
	slog.Info("listening for theme invalidations", "channel", InvalidationChannel, "origin", b.origin)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var inv Invalidation
			if err := json.Unmarshal([]byte(msg.Payload), &inv); err != nil {
				slog.Warn("invalid invalidation message", "error", err)
				continue
			}
			if inv.Origin == b.origin {
				continue
			}
			metrics.Invalidations.WithLabelValues("received").Inc()
			slog.Debug("theme invalidation received",
				"origin", inv.Origin,
				"entity_type", inv.EntityType,
				"entity_key", inv.EntityKey,
				"action", inv.Action,
			)
			handle(ctx, inv)
		}
	}
}
