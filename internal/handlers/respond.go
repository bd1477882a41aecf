// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the wedding theme API.
// Handlers are grouped by concern (public theme queries, admin rule-table
// writes) and receive their dependencies through the handler struct.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"weddingplanner/internal/engine"
	"weddingplanner/internal/middleware"
	"weddingplanner/internal/store"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON encodes data as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("write json response", "error", err)
	}
}

// writeRaw sends an already-encoded JSON body.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeFailure maps an engine or store error to its HTTP status. Engine
// failures keep their message; anything unrecognised is logged and
// reported as a bare 500.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var engErr *engine.Error
	switch {
	case errors.As(err, &engErr):
		writeError(w, engineStatus(engErr), engErr.Code(), engErr.Message)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, store.ErrInvalidReference):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_REFERENCE", referenceMessage(err))
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromCtx(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func engineStatus(err *engine.Error) int {
	switch {
	case errors.Is(err, engine.ErrUnknownWeddingType), errors.Is(err, engine.ErrNoRuleData):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidColourInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrNoEligibleColours):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// referenceMessage keeps the store's explanation when it wrote one and
// hides raw driver errors otherwise.
func referenceMessage(err error) string {
	var ref *store.ReferenceError
	if errors.As(err, &ref) {
		return ref.Reason
	}
	return "referenced wedding type or colour does not exist"
}

// pathParam returns a decoded URL parameter. Names contain spaces and may
// contain escaped slashes, in which case chi matched on the raw path.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
