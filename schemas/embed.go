// Package schemas embeds the JSON Schema documents that describe resume data at the
// system boundaries: the AI extraction response and the saved document format.
package schemas

import "embed"

// File names inside FS.
const (
	ExtractionSchema = "extraction.schema.json"
	DocumentSchema   = "document.schema.json"
)

// FS holds every schema file.
//
//go:embed *.schema.json
var FS embed.FS
