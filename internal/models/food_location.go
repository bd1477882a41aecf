// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// FoodLocation carries the menu, drinks and pre-shoot venue suggestions
// for a wedding type. At most one row exists per wedding type.
type FoodLocation struct {
	WeddingType       string `json:"wedding_type"`
	FoodMenu          string `json:"food_menu"`
	Drinks            string `json:"drinks"`
	PreShootLocations string `json:"pre_shoot_locations"`
}
