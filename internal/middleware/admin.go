// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

// AdminTokenHeader is an alternative to "Authorization: Bearer <token>".
const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken rejects requests that do not present token. The
// comparison runs in constant time.
func RequireAdminToken(token string) func(http.Handler) http.Handler {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := presentedToken(r)
			if got == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "admin token required")
				return
			}
			if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				slog.Warn("admin token rejected",
					"path", r.URL.Path,
					"remote", clientIP(r),
					"request_id", RequestIDFromCtx(r.Context()),
				)
				writeError(w, http.StatusForbidden, "FORBIDDEN", "invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func presentedToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if scheme, rest, ok := strings.Cut(auth, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(rest)
		}
	}
	return strings.TrimSpace(r.Header.Get(AdminTokenHeader))
}
