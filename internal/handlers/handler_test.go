// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Public endpoints run against the embedded seed fixture; admin tests need
// PostgreSQL and are skipped when it is unavailable, as are the Valkey
// cache tests.
package handlers

import (
	"context"
	"database/sql"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"weddingplanner/internal/cache"
	"weddingplanner/internal/database"
	"weddingplanner/internal/engine"
	"weddingplanner/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "weddingplanner")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "weddingplanner")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "suggest:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// fixtureEngine returns an engine serving the embedded seed fixture.
func fixtureEngine(t *testing.T) *engine.Engine {
	t.Helper()
	f, err := database.LoadFixture("")
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	return engine.New(f.Source())
}

// testEnv holds the dependencies for admin integration tests.
type testEnv struct {
	DB       *sql.DB
	Themes   *store.ThemeSource
	CacheLog *store.CacheLogStore
	Engine   *engine.Engine
	Admin    *Admin
	Theme    *Theme
	Router   http.Handler
}

// newTestEnv wires the handlers to the test database. Valkey is left out;
// the admin handlers work without it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	themes := store.NewThemeSource(db)
	cacheLog := store.NewCacheLogStore(db)
	eng := engine.New(themes.Source())

	env := &testEnv{
		DB:       db,
		Themes:   themes,
		CacheLog: cacheLog,
		Engine:   eng,
		Admin:    NewAdmin(eng, themes, cacheLog, nil, nil),
		Theme:    NewTheme(eng, nil),
	}
	env.Router = testRouter(env.Theme, env.Admin)
	return env
}

// testRouter mounts the handlers on the same paths the production router
// uses, without its middleware.
func testRouter(theme *Theme, admin *Admin) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/suggest", theme.Suggest)
		r.Get("/wedding-types", theme.WeddingTypes)
		r.Get("/colours/{weddingType}", theme.Colours)
		r.Get("/engine/info", theme.EngineInfo)

		if admin == nil {
			return
		}
		r.Post("/engine/rebuild", admin.Rebuild)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/cache-log", admin.CacheLog)
			r.Get("/colour-mappings", admin.ColourMappingsList)
			r.Put("/colour-mappings/{colour}", admin.ColourMappingUpsert)
			r.Delete("/colour-mappings/{colour}", admin.ColourMappingDelete)

			r.Get("/wedding-types", admin.WeddingTypesList)
			r.Route("/wedding-types/{weddingType}", func(r chi.Router) {
				r.Put("/", admin.WeddingTypeUpsert)
				r.Delete("/", admin.WeddingTypeDelete)
				r.Get("/colours", admin.CulturalColoursList)
				r.Put("/colours/{colour}", admin.CulturalColourUpsert)
				r.Delete("/colours/{colour}", admin.CulturalColourDelete)
				r.Get("/restricted", admin.RestrictedColoursList)
				r.Put("/restricted/{colour}", admin.RestrictedColourAdd)
				r.Delete("/restricted/{colour}", admin.RestrictedColourDelete)
				r.Get("/rules", admin.ColourRulesList)
				r.Put("/rules/{brideColour}", admin.ColourRuleUpsert)
				r.Delete("/rules/{brideColour}", admin.ColourRuleDelete)
				r.Get("/food", admin.FoodLocationGet)
				r.Put("/food", admin.FoodLocationUpsert)
				r.Delete("/food", admin.FoodLocationDelete)
			})
		})
	})
	return r
}

// serve sends one request through h and returns the recorder.
func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// decodeBody decodes a JSON response body into v.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

// wantError asserts an error response with the given status and code.
func wantError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	var body errorResponse
	decodeBody(t, rr, &body)
	if body.Code != code || body.Error == "" {
		t.Errorf("error body = %+v, want code %s", body, code)
	}
}

// uniqueName returns a wedding type name no other test run uses.
func uniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

// newSuggestionCache returns a short-TTL suggestion cache on the test Valkey.
func newSuggestionCache(t *testing.T) *cache.SuggestionCache {
	t.Helper()
	return cache.NewSuggestionCache(testValkeyClient(t), time.Minute)
}
