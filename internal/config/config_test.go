package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"GEMINI_API_KEY", "LLM_PROVIDER", "VERTEX_PROJECT", "VERTEX_LOCATION", "LLM_MODEL",
	"PORT", "CORS_ORIGIN", "MAX_UPLOAD_BYTES", "INLINE_LIMIT_BYTES", "SESSION_IDLE_TTL",
	"CHROME_PATH", "CAPTURE_SCALE", "EXPORT_BUCKET", "EXPORT_PREFIX",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "file-key",
		"port": 9090,
		"template": "Classic",
		"capture_scale": 1.5,
		"session_idle_ttl": "30m",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "Classic", cfg.Template)
	assert.Equal(t, 1.5, cfg.CaptureScale)
	assert.Equal(t, 30*time.Minute, cfg.IdleTTL())
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LLM_PROVIDER", "vertex")
	t.Setenv("VERTEX_PROJECT", "my-project")
	t.Setenv("PORT", "3000")
	t.Setenv("CAPTURE_SCALE", "3")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("EXPORT_BUCKET", "exports")

	cfg := FromEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "vertex", cfg.Provider)
	assert.Equal(t, "my-project", cfg.VertexProject)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 3.0, cfg.CaptureScale)
	assert.Equal(t, int64(0), cfg.MaxUploadBytes)
	assert.Equal(t, "exports", cfg.ExportBucket)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "defaults", cfg: Defaults()},
		{name: "vertex with project", cfg: Config{Provider: "vertex", VertexProject: "p"}},
		{name: "vertex without project", cfg: Config{Provider: "vertex"}, wantErr: "vertex_project"},
		{name: "unknown provider", cfg: Config{Provider: "openai"}, wantErr: "unknown provider"},
		{name: "bad port", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "negative upload", cfg: Config{MaxUploadBytes: -1}, wantErr: "max_upload_bytes"},
		{name: "negative inline", cfg: Config{InlineLimit: -1}, wantErr: "inline_limit_bytes"},
		{name: "huge scale", cfg: Config{CaptureScale: 8}, wantErr: "capture_scale"},
		{name: "bad ttl", cfg: Config{SessionIdleTTL: "forever"}, wantErr: "session_idle_ttl"},
		{name: "zero ttl", cfg: Config{SessionIdleTTL: "0s"}, wantErr: "session_idle_ttl"},
		{name: "missing chrome", cfg: Config{ChromePath: "/nonexistent/chrome"}, wantErr: "chrome binary not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIKey:       "default-key",
		Template:     "Modern",
		Port:         8080,
		CaptureScale: 2,
		OutputDir:    "out",
	}

	partial := Config{
		APIKey: "custom-key",
		Port:   9000,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom-key", merged.APIKey)
	assert.Equal(t, 9000, merged.Port)

	// Default values should fill in empty fields
	assert.Equal(t, "Modern", merged.Template)
	assert.Equal(t, 2.0, merged.CaptureScale)
	assert.Equal(t, "out", merged.OutputDir)

	// Receiver is unchanged
	assert.Empty(t, partial.Template)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{APIKey: "k", Port: 1}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, cfg, merged)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "env-key")

	path := writeConfig(t, `{"api_key": "file-key", "port": 9090, "template": "Classic"}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey, "environment wins over file")
	assert.Equal(t, 9090, cfg.Port, "file wins over defaults")
	assert.Equal(t, "Classic", cfg.Template)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, DefaultCaptureScale, cfg.CaptureScale)
	assert.Equal(t, DefaultSessionIdleTTL, cfg.IdleTTL())
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_InvalidMerged(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "vertex")

	_, err := Load("")
	assert.ErrorContains(t, err, "vertex_project")
}
