// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/refeed/internal/config"
)

func TestRouter_UnmatchedRoutesAre401(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	for _, path := range []string{"/", "/nope", "/meals/a/b", "/api/v1/meals"} {
		rec := f.do(t, http.MethodGet, path, nil, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", path, rec.Code)
			continue
		}
		if rec.Body.String() != "{}" {
			t.Errorf("GET %s body = %q, want {}", path, rec.Body.String())
		}
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	if rec := f.do(t, http.MethodPatch, "/meals/1", nil, ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PATCH /meals/1 = %d, want 405", rec.Code)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/health", nil, "")
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on plain HTTP")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind TLS proxy")
	}
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{name: "allowed origin", origin: "http://localhost:8080", want: "http://localhost:8080"},
		{name: "foreign origin", origin: "https://evil.example", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodOptions, "/meals", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	f.do(t, http.MethodGet, "/meals", nil, "")
	rec := f.do(t, http.MethodGet, "/metrics", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "refeed_api_requests_total") {
		t.Error("request counter missing from exposition")
	}
}

func TestRouter_Swagger(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/swagger/index.html", nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRouter_GlobalRateLimit(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t, func(c *config.Config) {
		c.Security.RateLimitDisabled = false
		c.Security.RateLimitReqs = 3
		c.Security.RateLimitWindow = time.Minute
	})

	for i := 0; i < 3; i++ {
		if rec := f.do(t, http.MethodGet, "/meals", nil, ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
	rec := f.do(t, http.MethodGet, "/meals", nil, "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rate limit exceeded") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRouter_HealthIgnoresRateLimit(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t, func(c *config.Config) {
		c.Security.RateLimitDisabled = false
		c.Security.RateLimitReqs = 3
		c.Security.RateLimitWindow = time.Minute
	})

	// Exhaust the per-IP budget on the API first.
	for i := 0; i < 4; i++ {
		f.do(t, http.MethodGet, "/meals", nil, "")
	}

	for i := 0; i < 10; i++ {
		rec := f.do(t, http.MethodGet, "/health", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("health request %d: status = %d, want 200", i+1, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"healthy":true`) {
			t.Fatalf("health request %d: body = %q", i+1, rec.Body.String())
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		limit   int64
		wantErr error
	}{
		{name: "valid", body: "{\"user\":\"a\",\"pw\":\"b\"}", limit: 1024},
		{name: "empty", body: "", limit: 1024, wantErr: ErrEmptyBody},
		{name: "whitespace", body: "  \n", limit: 1024, wantErr: ErrEmptyBody},
		{name: "malformed", body: "{", limit: 1024, wantErr: ErrMalformedBody},
		{name: "too large", body: "{\"user\":\"aaaaaaaaaaaaaaaa\"}", limit: 8, wantErr: ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			var v struct {
				User string `json:"user"`
				Pw   string `json:"pw"`
			}
			err := decodeJSON(httptest.NewRecorder(), req, tt.limit, &v)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if v.User != "a" || v.Pw != "b" {
					t.Errorf("decoded %+v", v)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	if got := sanitizeLogValue("a\nb\x7f"); got != "a\\x0ab\\x7f" {
		t.Errorf("sanitizeLogValue = %q", got)
	}
}
