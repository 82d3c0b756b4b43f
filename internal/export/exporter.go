package export

import (
	"bytes"
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// Result is a finished export.
type Result struct {
	Filename string
	PDF      []byte
	// Location is where the Archive sink stored a copy, if one is configured.
	Location string
}

// Exporter renders, captures and assembles a resume PDF.
type Exporter struct {
	Capturer Capturer
	Archive  Sink // optional
}

// NewExporter creates an Exporter. archive may be nil.
func NewExporter(capturer Capturer, archive Sink) *Exporter {
	return &Exporter{Capturer: capturer, Archive: archive}
}

// Export produces the PDF for a rendered presentation.
func (e *Exporter) Export(ctx context.Context, p *rendering.Presentation) (*Result, error) {
	if p == nil {
		return nil, &ExportError{Message: "nothing to export"}
	}

	var html bytes.Buffer
	if err := rendering.WriteHTML(&html, p); err != nil {
		return nil, &ExportError{Message: "failed to render preview", Cause: err}
	}

	img, err := e.Capturer.Capture(ctx, html.Bytes())
	if err != nil {
		var exportErr *ExportError
		if errors.As(err, &exportErr) {
			return nil, err
		}
		return nil, &ExportError{Message: "failed to capture preview", Cause: err}
	}

	pdf, err := AssemblePDF(img)
	if err != nil {
		return nil, err
	}

	res := &Result{Filename: Filename(p.Header.Name), PDF: pdf}
	if e.Archive != nil {
		// Archiving is best effort; the user still gets the download.
		loc, err := e.Archive.Save(ctx, uuid.NewString()+"-"+res.Filename, pdf)
		if err != nil {
			log.Printf("[EXPORT] archive failed for %s: %v", res.Filename, err)
		} else {
			res.Location = loc
		}
	}

	log.Printf("[EXPORT] %s: %d bytes (%s template)", res.Filename, len(pdf), p.Template)
	return res, nil
}
