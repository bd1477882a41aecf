// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"weddingplanner/internal/cache"
	"weddingplanner/internal/colour"
	"weddingplanner/internal/engine"
	"weddingplanner/internal/middleware"
	"weddingplanner/internal/models"
	"weddingplanner/internal/store"
)

// Admin groups the rule-table management handlers and their dependencies.
// Every successful write is logged, rebuilds the local snapshot and is
// broadcast to the other instances.
type Admin struct {
	engine      *engine.Engine
	themes      *store.ThemeSource
	cacheLog    *store.CacheLogStore
	suggestions *cache.SuggestionCache
	broadcaster *cache.Broadcaster
}

// NewAdmin creates a new Admin handler group. suggestions and broadcaster
// may be nil if Valkey is not configured.
func NewAdmin(eng *engine.Engine, themes *store.ThemeSource, cacheLog *store.CacheLogStore, suggestions *cache.SuggestionCache, broadcaster *cache.Broadcaster) *Admin {
	return &Admin{
		engine:      eng,
		themes:      themes,
		cacheLog:    cacheLog,
		suggestions: suggestions,
		broadcaster: broadcaster,
	}
}

// --- Wedding types ---

type weddingTypeRequest struct {
	Description string `json:"description" validate:"max=2000"`
	IsActive    *bool  `json:"is_active"`
}

// WeddingTypesList returns every wedding type, inactive ones included.
func (a *Admin) WeddingTypesList(w http.ResponseWriter, r *http.Request) {
	types, err := a.themes.WeddingTypes.List(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wedding_types": types})
}

// WeddingTypeUpsert creates or updates a wedding type. New types are
// active unless is_active is false.
func (a *Admin) WeddingTypeUpsert(w http.ResponseWriter, r *http.Request) {
	name, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	var req weddingTypeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	wt := &models.WeddingType{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	saved, err := a.themes.WeddingTypes.Upsert(r.Context(), wt)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityWeddingType, name, store.ActionUpsert)
	writeJSON(w, http.StatusOK, saved)
}

// WeddingTypeDelete removes a wedding type and, by cascade, all of its
// colours, restrictions, rules and food suggestions.
func (a *Admin) WeddingTypeDelete(w http.ResponseWriter, r *http.Request) {
	name, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	if err := a.themes.WeddingTypes.Delete(r.Context(), name); err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityWeddingType, name, store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// --- Cultural colours ---

type culturalColourRequest struct {
	RGB                  string  `json:"rgb" validate:"notblank,max=32"`
	CulturalSignificance *string `json:"cultural_significance" validate:"omitempty,max=2000"`
}

// CulturalColoursList returns every cultural colour of a wedding type,
// restricted ones included.
func (a *Admin) CulturalColoursList(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	colours, err := a.themes.CulturalColours.ListByWeddingType(r.Context(), wt)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wedding_type": wt, "colours": colourList(colours)})
}

// CulturalColourUpsert creates or updates a cultural colour. The rgb field
// accepts "r,g,b", "rgb(r,g,b)" or hex.
func (a *Admin) CulturalColourUpsert(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	name, ok := a.nameParam(w, r, "colour", "colour name")
	if !ok {
		return
	}
	var req culturalColourRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	rgb, err := colour.Parse(req.RGB)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_RGB", err.Error())
		return
	}

	saved, err := a.themes.CulturalColours.Upsert(r.Context(), &models.CulturalColour{
		WeddingType:          wt,
		Name:                 name,
		RGB:                  rgb,
		CulturalSignificance: trimmedOrNil(req.CulturalSignificance),
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityCulturalColour, wt+"/"+name, store.ActionUpsert)
	writeJSON(w, http.StatusOK, saved)
}

// CulturalColourDelete removes a cultural colour.
func (a *Admin) CulturalColourDelete(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	name, ok := a.nameParam(w, r, "colour", "colour name")
	if !ok {
		return
	}
	if err := a.themes.CulturalColours.Delete(r.Context(), wt, name); err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityCulturalColour, wt+"/"+name, store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// --- Restricted colours ---

// RestrictedColoursList returns the restricted colour names of a wedding type.
func (a *Admin) RestrictedColoursList(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	names, err := a.themes.RestrictedColours.ListByWeddingType(r.Context(), wt)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wedding_type": wt, "restricted_colours": names})
}

// RestrictedColourAdd restricts a colour. It takes no body.
func (a *Admin) RestrictedColourAdd(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	name, ok := a.nameParam(w, r, "colour", "colour name")
	if !ok {
		return
	}
	rc := &models.RestrictedColour{WeddingType: wt, Name: name}
	if err := a.themes.RestrictedColours.Add(r.Context(), rc); err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityRestrictedColour, wt+"/"+name, store.ActionUpsert)
	writeJSON(w, http.StatusOK, rc)
}

// RestrictedColourDelete lifts a restriction.
func (a *Admin) RestrictedColourDelete(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	name, ok := a.nameParam(w, r, "colour", "colour name")
	if !ok {
		return
	}
	if err := a.themes.RestrictedColours.Delete(r.Context(), wt, name); err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityRestrictedColour, wt+"/"+name, store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// --- Colour rules ---

type colourRuleRequest struct {
	GroomColour       string `json:"groom_colour" validate:"notblank,max=100"`
	BridesmaidsColour string `json:"bridesmaids_colour" validate:"notblank,max=100"`
	BestMenColour     string `json:"best_men_colour" validate:"notblank,max=100"`
	FlowerDecoColour  string `json:"flower_deco_colour" validate:"notblank,max=100"`
	HallDecorColour   string `json:"hall_decor_colour" validate:"notblank,max=100"`
}

// ColourRulesList returns the rules of a wedding type.
func (a *Admin) ColourRulesList(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	rules, err := a.themes.ColourRules.ListByWeddingType(r.Context(), wt)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wedding_type": wt, "colour_rules": rules})
}

// ColourRuleUpsert creates or replaces the rule for a bride colour.
func (a *Admin) ColourRuleUpsert(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	bride, ok := a.nameParam(w, r, "brideColour", "bride colour")
	if !ok {
		return
	}
	var req colourRuleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	saved, err := a.themes.ColourRules.Upsert(r.Context(), &models.ColourRule{
		WeddingType:       wt,
		BrideColour:       bride,
		GroomColour:       strings.TrimSpace(req.GroomColour),
		BridesmaidsColour: strings.TrimSpace(req.BridesmaidsColour),
		BestMenColour:     strings.TrimSpace(req.BestMenColour),
		FlowerDecoColour:  strings.TrimSpace(req.FlowerDecoColour),
		HallDecorColour:   strings.TrimSpace(req.HallDecorColour),
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityColourRule, wt+"/"+bride, store.ActionUpsert)
	writeJSON(w, http.StatusOK, saved)
}

// ColourRuleDelete removes the rule for a bride colour.
func (a *Admin) ColourRuleDelete(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	bride, ok := a.nameParam(w, r, "brideColour", "bride colour")
	if !ok {
		return
	}
	if err := a.themes.ColourRules.Delete(r.Context(), wt, bride); err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityColourRule, wt+"/"+bride, store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// --- Food and locations ---

type foodLocationRequest struct {
	FoodMenu          string `json:"food_menu" validate:"max=2000"`
	Drinks            string `json:"drinks" validate:"max=2000"`
	PreShootLocations string `json:"pre_shoot_locations" validate:"max=2000"`
}

// FoodLocationGet returns the food and venue suggestions of a wedding type.
func (a *Admin) FoodLocationGet(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	food, err := a.themes.FoodLocations.FindByWeddingType(r.Context(), wt)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if food == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no food and location data for "+wt)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

// FoodLocationUpsert replaces the food and venue suggestions of a wedding type.
func (a *Admin) FoodLocationUpsert(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	var req foodLocationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	saved, err := a.themes.FoodLocations.Upsert(r.Context(), &models.FoodLocation{
		WeddingType:       wt,
		FoodMenu:          strings.TrimSpace(req.FoodMenu),
		Drinks:            strings.TrimSpace(req.Drinks),
		PreShootLocations: strings.TrimSpace(req.PreShootLocations),
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityFoodLocation, wt, store.ActionUpsert)
	writeJSON(w, http.StatusOK, saved)
}

// FoodLocationDelete removes the food and venue suggestions of a wedding type.
func (a *Admin) FoodLocationDelete(w http.ResponseWriter, r *http.Request) {
	wt, ok := a.nameParam(w, r, "weddingType", "wedding type")
	if !ok {
		return
	}
	if err := a.themes.FoodLocations.Delete(r.Context(), wt); err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityFoodLocation, wt, store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// --- Colour mappings ---

type colourMappingRequest struct {
	RGB         string  `json:"rgb" validate:"notblank,max=32"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// ColourMappingsList returns the global colour name to RGB mappings.
func (a *Admin) ColourMappingsList(w http.ResponseWriter, r *http.Request) {
	mappings, err := a.themes.ColourMappings.List(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"colour_mappings": mappings})
}

// ColourMappingUpsert creates or updates a global colour mapping.
func (a *Admin) ColourMappingUpsert(w http.ResponseWriter, r *http.Request) {
	name, ok := a.nameParam(w, r, "colour", "colour name")
	if !ok {
		return
	}
	var req colourMappingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	rgb, err := colour.Parse(req.RGB)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_RGB", err.Error())
		return
	}

	saved, err := a.themes.ColourMappings.Upsert(r.Context(), &models.ColourMapping{
		Name:        name,
		RGB:         rgb,
		Description: trimmedOrNil(req.Description),
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityColourMapping, name, store.ActionUpsert)
	writeJSON(w, http.StatusOK, saved)
}

// ColourMappingDelete removes a global colour mapping.
func (a *Admin) ColourMappingDelete(w http.ResponseWriter, r *http.Request) {
	name, ok := a.nameParam(w, r, "colour", "colour name")
	if !ok {
		return
	}
	if err := a.themes.ColourMappings.Delete(r.Context(), name); err != nil {
		writeFailure(w, r, err)
		return
	}
	a.changed(r.Context(), store.EntityColourMapping, name, store.ActionDelete)
	w.WriteHeader(http.StatusNoContent)
}

// --- Engine ---

// Rebuild forces a snapshot rebuild, clears the suggestion cache and tells
// the other instances to do the same.
func (a *Admin) Rebuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a.engine.Invalidate()
	snap, err := a.engine.Rebuild(ctx)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if a.suggestions != nil {
		a.suggestions.InvalidateAll(ctx)
	}
	a.cacheLog.Log(ctx, store.EntitySnapshot, snap.Fingerprint, store.ActionRebuild)
	a.broadcast(ctx, store.EntitySnapshot, snap.Fingerprint, store.ActionRebuild, snap.Fingerprint)
	writeJSON(w, http.StatusOK, a.engine.Info())
}

// CacheLog returns the most recent invalidation log entries.
func (a *Admin) CacheLog(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "limit must be between 1 and 500")
			return
		}
		limit = n
	}
	entries, err := a.cacheLog.RecentEntries(r.Context(), limit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// --- Helpers ---

// changed records a successful write: it is logged, the local snapshot is
// rebuilt and peers are told. A failed rebuild leaves the engine stale so
// the next request retries; the write itself has already succeeded.
func (a *Admin) changed(ctx context.Context, entityType, entityKey, action string) {
	a.cacheLog.Log(ctx, entityType, entityKey, action)

	a.engine.Invalidate()
	var fingerprint string
	if snap, err := a.engine.Rebuild(ctx); err != nil {
		slog.Error("rebuild after rule change failed",
			"entity_type", entityType,
			"entity_key", entityKey,
			"request_id", middleware.RequestIDFromCtx(ctx),
			"error", err,
		)
	} else {
		fingerprint = snap.Fingerprint
	}

	a.broadcast(ctx, entityType, entityKey, action, fingerprint)
}

func (a *Admin) broadcast(ctx context.Context, entityType, entityKey, action, fingerprint string) {
	if a.broadcaster == nil {
		return
	}
	// Publish errors are logged by the broadcaster.
	_ = a.broadcaster.Publish(ctx, cache.Invalidation{
		EntityType:  entityType,
		EntityKey:   entityKey,
		Action:      action,
		Fingerprint: fingerprint,
	})
}

// nameParam reads and checks a name from the URL path, writing a 400 when
// it is unusable.
func (a *Admin) nameParam(w http.ResponseWriter, r *http.Request, key, what string) (string, bool) {
	v := strings.TrimSpace(pathParam(r, key))
	if err := validateName(what, v); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return "", false
	}
	return v, true
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
