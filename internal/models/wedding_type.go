// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the rule-table records read by the theme engine
// and written by the admin API.
package models

import "time"

// WeddingType is a ceremony style (e.g. "Kandyan Sinhala Wedding"). Name is
// the canonical, case-preserving form; lookups compare it case-insensitively.
type WeddingType struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	IsActive    bool      `json:"is_active" yaml:"is_active"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"-"`
}
