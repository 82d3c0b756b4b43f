package ingestion

import (
	"context"
	"log"

	"github.com/jonathan/resume-builder/internal/resume"
)

// DefaultInlineLimit is the largest upload sent to the model as an attached document.
// Larger PDFs and text files are reduced to text first.
const DefaultInlineLimit = 15 << 20

// Upload is one user-supplied file.
type Upload struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Result is a successful import.
type Result struct {
	Document resume.Document
	Metadata *Metadata
}

// Importer routes uploads to the extractor.
type Importer struct {
	Extractor   *Extractor
	InlineLimit int
}

// NewImporter creates an Importer. A non-positive inlineLimit selects DefaultInlineLimit.
func NewImporter(extractor *Extractor, inlineLimit int) *Importer {
	if inlineLimit <= 0 {
		inlineLimit = DefaultInlineLimit
	}
	return &Importer{Extractor: extractor, InlineLimit: inlineLimit}
}

// Import reads an upload into a fresh document. Unsupported kinds are rejected with
// *UnsupportedFileTypeError before the file is parsed; every later failure is an
// *ExtractionError.
func (im *Importer) Import(ctx context.Context, up Upload) (*Result, error) {
	kind, err := DetectKind(up.Filename, up.MIMEType)
	if err != nil {
		return nil, err
	}
	if len(up.Data) == 0 {
		return nil, &ExtractionError{Message: "the file is empty"}
	}

	meta := NewMetadata(up, kind)
	meta.Model = im.Extractor.Client.GetModel(im.Extractor.Tier)

	doc, err := im.route(ctx, kind, up.Data, meta)
	if err != nil {
		log.Printf("[IMPORT] %s (%s, %d bytes, %s) failed: %v", up.Filename, kind, meta.Size, meta.Route, err)
		return nil, err
	}

	log.Printf("[IMPORT] %s (%s, %d bytes) via %s: %d experience, %d education, %d projects, %d skill groups",
		up.Filename, kind, meta.Size, meta.Route,
		len(doc.Experience), len(doc.Education), len(doc.Projects), len(doc.Skills))
	return &Result{Document: doc, Metadata: meta}, nil
}

func (im *Importer) route(ctx context.Context, kind Kind, data []byte, meta *Metadata) (resume.Document, error) {
	inline := len(data) <= im.InlineLimit

	switch kind {
	case KindDOCX:
		meta.Route = RouteText
		text, err := ExtractDOCXText(data)
		if err != nil {
			return resume.Document{}, &ExtractionError{Message: "could not read the Word document", Cause: err}
		}
		return im.Extractor.ExtractText(ctx, kind, text)

	case KindPDF:
		pages, err := InspectPDF(data)
		if err != nil {
			return resume.Document{}, &ExtractionError{Message: "could not read the PDF", Cause: err}
		}
		meta.Pages = pages
		if inline {
			meta.Route = RouteInline
			return im.Extractor.ExtractFile(ctx, kind, data)
		}
		meta.Route = RouteText
		text, err := ExtractPDFText(data)
		if err != nil {
			return resume.Document{}, &ExtractionError{Message: "could not read text from the PDF", Cause: err}
		}
		return im.Extractor.ExtractText(ctx, kind, text)

	default:
		if inline {
			meta.Route = RouteInline
			return im.Extractor.ExtractFile(ctx, kind, data)
		}
		meta.Route = RouteText
		return im.Extractor.ExtractText(ctx, kind, CleanText(string(data)))
	}
}
