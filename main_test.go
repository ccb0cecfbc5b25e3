package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixbrock/partnerdash/internal/app"
)

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("GOPORT", "")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("RATE_BURST", "")

	assert.Equal(t, app.Config{Port: "8000", RateLimit: 10, RateBurst: 20}, config())
}

func TestConfig_ValidValues(t *testing.T) {
	t.Setenv("GOPORT", "9090")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("RATE_BURST", "5")

	assert.Equal(t, app.Config{Port: "9090", RateLimit: 2.5, RateBurst: 5}, config())
}

func TestConfig_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		limit string
		burst string
	}{
		{name: "not a number", limit: "fast", burst: "many"},
		{name: "zero", limit: "0", burst: "0"},
		{name: "negative", limit: "-3", burst: "-1"},
		{name: "NaN", limit: "NaN", burst: "1.5"},
		{name: "infinity", limit: "+Inf", burst: "1e3"},
		{name: "negative infinity", limit: "-Inf", burst: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RATE_LIMIT", tt.limit)
			t.Setenv("RATE_BURST", tt.burst)

			cfg := config()
			assert.Equal(t, 10.0, cfg.RateLimit)
			assert.Equal(t, 20, cfg.RateBurst)
		})
	}
}

func TestConfig_NaNRateStillLimits(t *testing.T) {
	t.Setenv("RATE_LIMIT", "NaN")
	t.Setenv("RATE_BURST", "1")

	h := app.App{Config: config()}.Handler()

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/partner/analytics", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes[1:], http.StatusTooManyRequests)
}
