package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SMOKE_BASE_URL", "http://localhost:5001/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5001/", cfg.BaseURL)
	assert.Equal(t, 3, cfg.Attempts)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.HomeMarkers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SMOKE_BASE_URL", "http://localhost:5004/")
	t.Setenv("SMOKE_ATTEMPTS", "5")
	t.Setenv("SMOKE_RETRY_DELAY", "250ms")
	t.Setenv("SMOKE_MARKERS", "Home Page,Log in")
	t.Setenv("SMOKE_STATIC_PATHS", "/Content/bootstrap.css,/Scripts/site.js")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, []string{"Home Page", "Log in"}, cfg.HomeMarkers)
	assert.Equal(t, []string{"/Content/bootstrap.css", "/Scripts/site.js"}, cfg.StaticPaths)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing base url", env: map[string]string{"SMOKE_BASE_URL": ""}, want: "SMOKE_BASE_URL"},
		{name: "zero attempts", env: map[string]string{"SMOKE_BASE_URL": "http://x/", "SMOKE_ATTEMPTS": "0"}, want: "SMOKE_ATTEMPTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
