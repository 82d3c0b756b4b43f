// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied by MergeWithDefaults when a field is unset.
const (
	DefaultPort           = 8080
	DefaultMaxUploadBytes = 10 << 20
	DefaultInlineLimit    = 15 << 20
	DefaultCaptureScale   = 2.0
	DefaultSessionIdleTTL = 2 * time.Hour
	DefaultProvider       = "gemini"
)

// Config represents the configuration that can be loaded from a JSON file and the
// environment. All fields are optional; missing values use defaults.
type Config struct {
	// Model access
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key
	Provider       string `json:"provider,omitempty"`        // "gemini" or "vertex"
	VertexProject  string `json:"vertex_project,omitempty"`  // GCP project for Vertex AI
	VertexLocation string `json:"vertex_location,omitempty"` // Vertex AI region
	Model          string `json:"model,omitempty"`           // Overrides the standard tier model

	// Server
	Port           int    `json:"port,omitempty"`
	CORSOrigin     string `json:"cors_origin,omitempty"`      // Allowed origin; "*" when empty
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"` // Largest accepted import upload
	InlineLimit    int    `json:"inline_limit_bytes,omitempty"`
	SessionIdleTTL string `json:"session_idle_ttl,omitempty"` // Go duration, e.g. "2h"

	// Rendering and export
	Template     string  `json:"template,omitempty"`    // Template used by the CLI
	ChromePath   string  `json:"chrome_path,omitempty"` // Headless Chrome binary
	CaptureScale float64 `json:"capture_scale,omitempty"`
	ExportBucket string  `json:"export_bucket,omitempty"` // Cloud Storage bucket for archived exports
	ExportPrefix string  `json:"export_prefix,omitempty"`
	OutputDir    string  `json:"output_dir,omitempty"` // CLI export directory

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from environment variables. Unset variables leave
// their fields empty.
func FromEnv() Config {
	return Config{
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		Provider:       os.Getenv("LLM_PROVIDER"),
		VertexProject:  os.Getenv("VERTEX_PROJECT"),
		VertexLocation: os.Getenv("VERTEX_LOCATION"),
		Model:          os.Getenv("LLM_MODEL"),
		Port:           envInt("PORT"),
		CORSOrigin:     os.Getenv("CORS_ORIGIN"),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES")),
		InlineLimit:    envInt("INLINE_LIMIT_BYTES"),
		SessionIdleTTL: os.Getenv("SESSION_IDLE_TTL"),
		ChromePath:     os.Getenv("CHROME_PATH"),
		CaptureScale:   envFloat("CAPTURE_SCALE"),
		ExportBucket:   os.Getenv("EXPORT_BUCKET"),
		ExportPrefix:   os.Getenv("EXPORT_PREFIX"),
	}
}

func envInt(key string) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return 0
}

func envFloat(key string) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return 0
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for credentials; commands that need a model check those
// themselves.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Provider) {
	case "", "gemini":
	case "vertex":
		if c.VertexProject == "" {
			return fmt.Errorf("config error: 'vertex_project' is required when provider is vertex")
		}
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.InlineLimit < 0 {
		return fmt.Errorf("config error: 'inline_limit_bytes' must be non-negative")
	}
	if c.CaptureScale < 0 || c.CaptureScale > 4 {
		return fmt.Errorf("config error: 'capture_scale' must be between 0 and 4")
	}
	if c.SessionIdleTTL != "" {
		if d, err := time.ParseDuration(c.SessionIdleTTL); err != nil || d <= 0 {
			return fmt.Errorf("config error: 'session_idle_ttl' must be a positive duration, got %q", c.SessionIdleTTL)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// It is used to layer a config file under the environment, and both under flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.Provider, defaults.Provider)
	mergeString(&result.VertexProject, defaults.VertexProject)
	mergeString(&result.VertexLocation, defaults.VertexLocation)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.CORSOrigin, defaults.CORSOrigin)
	mergeString(&result.SessionIdleTTL, defaults.SessionIdleTTL)
	mergeString(&result.Template, defaults.Template)
	mergeString(&result.ChromePath, defaults.ChromePath)
	mergeString(&result.ExportBucket, defaults.ExportBucket)
	mergeString(&result.ExportPrefix, defaults.ExportPrefix)
	mergeString(&result.OutputDir, defaults.OutputDir)

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.InlineLimit == 0 {
		result.InlineLimit = defaults.InlineLimit
	}
	if result.CaptureScale == 0 {
		result.CaptureScale = defaults.CaptureScale
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:       DefaultProvider,
		Port:           DefaultPort,
		CORSOrigin:     "*",
		MaxUploadBytes: DefaultMaxUploadBytes,
		InlineLimit:    DefaultInlineLimit,
		SessionIdleTTL: DefaultSessionIdleTTL.String(),
		Template:       "Modern",
		CaptureScale:   DefaultCaptureScale,
		OutputDir:      ".",
	}
}

// Load builds the effective configuration: environment over the optional JSON file
// at path, over Defaults. The result is validated.
func Load(path string) (Config, error) {
	env := FromEnv()
	merged := env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		merged = env.MergeWithDefaults(*file)
	}
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// IdleTTL returns the parsed session idle timeout, or the default when unset.
func (c *Config) IdleTTL() time.Duration {
	if d, err := time.ParseDuration(c.SessionIdleTTL); err == nil && d > 0 {
		return d
	}
	return DefaultSessionIdleTTL
}
