// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"weddingplanner/internal/cache"
	"weddingplanner/internal/colour"
	"weddingplanner/internal/engine"
	"weddingplanner/internal/models"
)

// Theme serves the public recommendation endpoints.
type Theme struct {
	engine      *engine.Engine
	suggestions *cache.SuggestionCache
}

// NewTheme creates the public handler group. suggestions may be nil when
// Valkey is not available; every request is then computed.
func NewTheme(eng *engine.Engine, suggestions *cache.SuggestionCache) *Theme {
	return &Theme{engine: eng, suggestions: suggestions}
}

// suggestRequest is the body of POST /api/suggest.
type suggestRequest struct {
	WeddingType string `json:"wedding_type" validate:"notblank,max=100"`
	BrideColour string `json:"bride_colour" validate:"notblank,max=100"`
}

// Suggest recommends a full colour theme for a wedding type and the
// bride's dress colour.
func (h *Theme) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ctx := r.Context()
	if h.suggestions != nil {
		if snap, err := h.engine.Snapshot(ctx); err == nil {
			key := cache.SuggestionKey(snap.Fingerprint, req.WeddingType, req.BrideColour)
			if body, ok := h.suggestions.Get(ctx, key); ok {
				w.Header().Set("X-Cache", "HIT")
				writeRaw(w, http.StatusOK, body)
				return
			}
		}
	}

	rec, err := h.engine.Predict(ctx, req.WeddingType, req.BrideColour)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	body, err := json.Marshal(rec)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	body = append(body, '\n')

	if h.suggestions != nil {
		key := cache.SuggestionKey(rec.Snapshot, req.WeddingType, req.BrideColour)
		h.suggestions.Set(ctx, key, body)
		w.Header().Set("X-Cache", "MISS")
	}

	slog.Debug("theme suggested",
		"wedding_type", rec.WeddingType,
		"bride_colour", rec.BrideColour.Name,
		"match", rec.Match,
		"confidence", rec.Confidence,
	)
	writeRaw(w, http.StatusOK, body)
}

// WeddingTypes lists the active wedding types with their rule counts.
func (h *Theme) WeddingTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.engine.WeddingTypes(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"wedding_types": types,
		"count":         len(types),
	})
}

// colourResponse is one selectable bride colour.
type colourResponse struct {
	Name                 string     `json:"name"`
	Hex                  string     `json:"hex"`
	RGB                  colour.RGB `json:"rgb"`
	CulturalSignificance *string    `json:"cultural_significance"`
}

// Colours lists the colours a bride may choose for a wedding type.
// Restricted colours are left out.
func (h *Theme) Colours(w http.ResponseWriter, r *http.Request) {
	weddingType := pathParam(r, "weddingType")
	colours, err := h.engine.AvailableColours(r.Context(), weddingType)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"wedding_type": weddingType,
		"colours":      colourList(colours),
	})
}

func colourList(colours []models.CulturalColour) []colourResponse {
	out := make([]colourResponse, 0, len(colours))
	for _, c := range colours {
		out = append(out, colourResponse{
			Name:                 c.Name,
			Hex:                  c.Hex(),
			RGB:                  c.RGB,
			CulturalSignificance: c.CulturalSignificance,
		})
	}
	return out
}

// EngineInfo reports on the snapshot currently being served.
func (h *Theme) EngineInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Info())
}
