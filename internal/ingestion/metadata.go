package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Route records how an upload reached the extractor.
type Route string

const (
	// RouteInline sends the original bytes to the model as an attached document.
	RouteInline Route = "inline"
	// RouteText sends locally extracted text instead.
	RouteText Route = "text"
)

// Metadata describes one import.
type Metadata struct {
	Filename  string `json:"filename"`
	Kind      Kind   `json:"kind"`
	Size      int    `json:"size"`
	Pages     int    `json:"pages,omitempty"`
	Route     Route  `json:"route"`
	Model     string `json:"model,omitempty"`
	Hash      string `json:"hash"`      // SHA256 hex digest of the upload
	Timestamp string `json:"timestamp"` // RFC3339 format
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(upload Upload, kind Kind) *Metadata {
	return &Metadata{
		Filename:  upload.Filename,
		Kind:      kind,
		Size:      len(upload.Data),
		Hash:      computeHash(upload.Data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
