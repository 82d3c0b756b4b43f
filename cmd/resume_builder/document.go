package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// loadConfig resolves the effective configuration, honouring --verbose.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// readDocument loads a resume document from path, or stdin when path is "-". The file
// is checked against the document schema before it is decoded.
func readDocument(path string, stdin io.Reader) (resume.Document, error) {
	var (
		content []byte
		err     error
	)
	if path == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return resume.Document{}, fmt.Errorf("failed to read document: %w", err)
	}

	if err := schemas.ValidateDocument(string(content)); err != nil {
		return resume.Document{}, fmt.Errorf("invalid document %s: %w", path, err)
	}

	var doc resume.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return resume.Document{}, fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}
	if err := resume.ValidateSectionOrder(doc.SectionOrder); err != nil {
		return resume.Document{}, err
	}
	return doc, nil
}

// writeOutput writes content to path, or to stdout when path is empty or "-".
func writeOutput(path string, content []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// marshalDocument renders doc as indented JSON with a trailing newline.
func marshalDocument(doc resume.Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return append(out, '\n'), nil
}

// present lays out doc with the named template.
func present(doc resume.Document, templateName string) (*rendering.Presentation, error) {
	tmpl, err := rendering.Lookup(templateName)
	if err != nil {
		return nil, err
	}
	return tmpl.Render(doc, doc.SectionOrder), nil
}
