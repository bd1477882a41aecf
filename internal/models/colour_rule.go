// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Role names one of the companion colour slots of a rule.
type Role string

const (
	RoleGroom       Role = "groom"
	RoleBridesmaids Role = "bridesmaids"
	RoleBestMen     Role = "best_men"
	RoleFlowerDeco  Role = "flower_deco"
	RoleHallDecor   Role = "hall_decor"
)

// CompanionRoles lists the companion slots in presentation order.
var CompanionRoles = []Role{RoleGroom, RoleBridesmaids, RoleBestMen, RoleFlowerDeco, RoleHallDecor}

// ColourRule maps (WeddingType, BrideColour) to the full set of companion
// colours. At most one rule exists per key.
type ColourRule struct {
	WeddingType       string `json:"wedding_type"`
	BrideColour       string `json:"bride_colour"`
	GroomColour       string `json:"groom_colour"`
	BridesmaidsColour string `json:"bridesmaids_colour"`
	BestMenColour     string `json:"best_men_colour"`
	FlowerDecoColour  string `json:"flower_deco_colour"`
	HallDecorColour   string `json:"hall_decor_colour"`
}

// Companion returns the colour name stored for role, or "" for an unknown role.
func (r ColourRule) Companion(role Role) string {
	switch role {
	case RoleGroom:
		return r.GroomColour
	case RoleBridesmaids:
		return r.BridesmaidsColour
	case RoleBestMen:
		return r.BestMenColour
	case RoleFlowerDeco:
		return r.FlowerDecoColour
	case RoleHallDecor:
		return r.HallDecorColour
	}
	return ""
}
