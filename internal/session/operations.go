package session

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/ingestion"
)

// begin marks op as running and clears the banner. The returned func must be deferred;
// it clears the busy flag on every path.
func (s *Session) begin(op Operation) (func(), error) {
	if !s.busy[op].TryAcquire(1) {
		return nil, &BusyError{Op: op}
	}
	s.mu.Lock()
	s.running[op] = true
	s.errMsg = ""
	s.lastSeen = time.Now()
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.running[op] = false
		s.mu.Unlock()
		s.busy[op].Release(1)
	}, nil
}

// fail records err in the banner and returns it.
func (s *Session) fail(op Operation, err error) error {
	log.Printf("[SESSION] %s %s failed: %v", s.ID, op, err)
	s.mu.Lock()
	s.errMsg = UserMessage(err)
	s.mu.Unlock()
	return err
}

// Import replaces the document with one read from an upload. The current section
// order is kept. On failure the document is left untouched.
func (s *Session) Import(ctx context.Context, up ingestion.Upload) (*ingestion.Metadata, error) {
	if s.svc.Importer == nil {
		return nil, &UnavailableError{Op: OpImport}
	}
	done, err := s.begin(OpImport)
	if err != nil {
		return nil, err
	}
	defer done()

	res, err := s.svc.Importer.Import(ctx, up)
	if err != nil {
		return nil, s.fail(OpImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc := res.Document
	doc.SectionOrder = append(doc.SectionOrder[:0:0], s.doc.SectionOrder...)
	s.gesture.Cancel()
	s.commit(doc)
	return res.Metadata, nil
}

// GenerateSummary replaces the summary with a generated one and returns it.
func (s *Session) GenerateSummary(ctx context.Context) (string, error) {
	if s.svc.Summaries == nil {
		return "", &UnavailableError{Op: OpSummary}
	}
	done, err := s.begin(OpSummary)
	if err != nil {
		return "", err
	}
	defer done()

	text, err := s.svc.Summaries.Generate(ctx, s.Document())
	if err != nil {
		return "", s.fail(OpSummary, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(s.doc.UpdateSummary(text))
	return text, nil
}

// Export renders the current document with the selected template into a PDF.
func (s *Session) Export(ctx context.Context) (*export.Result, error) {
	if s.svc.Exporter == nil {
		return nil, &UnavailableError{Op: OpExport}
	}
	done, err := s.begin(OpExport)
	if err != nil {
		return nil, err
	}
	defer done()

	res, err := s.svc.Exporter.Export(ctx, s.Presentation())
	if err != nil {
		return nil, s.fail(OpExport, err)
	}
	return res, nil
}
