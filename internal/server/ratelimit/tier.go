package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// Tier names.
const (
	DefaultTier = "default"
	HealthTier  = "health"
	ModelTier   = "model"
	CaptureTier = "capture"
	SessionTier = "session"
	EditTier    = "edit"
	ReorderTier = "reorder"
)

// Tier is a group of routes that share one budget per client and method.
type Tier struct {
	Name   string
	Path   string // "*" matches one segment; a trailing "/" matches everything below
	Method string
	Limit  int // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit
}

// DefaultTiers returns the built-in route tiers. Reads and previews fall through to
// the global default.
func DefaultTiers(modelPerHour, capturePerHour int) []Tier {
	return []Tier{
		{Name: ModelTier, Path: "/session/import", Method: http.MethodPost, Limit: modelPerHour, Window: time.Hour, Burst: 3},
		{Name: ModelTier, Path: "/session/summary/generate", Method: http.MethodPost, Limit: modelPerHour, Window: time.Hour, Burst: 3},
		{Name: CaptureTier, Path: "/session/export.pdf", Method: http.MethodGet, Limit: capturePerHour, Window: time.Hour, Burst: 3},

		{Name: SessionTier, Path: "/sessions", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},

		{Name: EditTier, Path: "/session/contact", Method: http.MethodPut, Limit: 600, Window: time.Minute, Burst: 60},
		{Name: EditTier, Path: "/session/summary", Method: http.MethodPut, Limit: 600, Window: time.Minute, Burst: 60},
		{Name: EditTier, Path: "/session/template", Method: http.MethodPut, Limit: 600, Window: time.Minute, Burst: 60},
		{Name: EditTier, Path: "/session/sections/*/items", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Name: EditTier, Path: "/session/sections/*/items/", Method: http.MethodPatch, Limit: 600, Window: time.Minute, Burst: 60},
		{Name: EditTier, Path: "/session/sections/*/items/", Method: http.MethodDelete, Limit: 120, Window: time.Minute, Burst: 20},

		{Name: ReorderTier, Path: "/session/sections/", Method: http.MethodPost, Limit: 600, Window: time.Minute, Burst: 60},
		{Name: ReorderTier, Path: "/session/drag/", Method: http.MethodPost, Limit: 600, Window: time.Minute, Burst: 60},
	}
}

// MatchTier finds the tier for a request, or nil when the default applies. Exact
// paths win over patterns, and GET /health is never limited.
func MatchTier(path, method string, tiers []Tier) *Tier {
	if path == "/health" && method == http.MethodGet {
		return &Tier{Name: HealthTier, Path: path, Method: method}
	}

	for i := range tiers {
		if tiers[i].Method == method && tiers[i].Path == path {
			return &tiers[i]
		}
	}
	for i := range tiers {
		if tiers[i].Method == method && matchPattern(tiers[i].Path, path) {
			return &tiers[i]
		}
	}
	return nil
}

func matchPattern(pattern, path string) bool {
	below := strings.HasSuffix(pattern, "/")
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case below && len(got) <= len(want):
		return false
	case below:
		got = got[:len(want)]
	case len(got) != len(want):
		return false
	}

	for i, seg := range want {
		if seg != "*" && seg != got[i] {
			return false
		}
	}
	return true
}
