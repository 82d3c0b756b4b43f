package session

import (
	"bytes"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/reorder"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/summary"
	"golang.org/x/sync/semaphore"
)

// Services are the collaborators behind the long-running operations. Any of them may
// be nil, in which case the operation reports *UnavailableError.
type Services struct {
	Importer  *ingestion.Importer
	Summaries *summary.Generator
	Exporter  *export.Exporter
}

// Drag is the pending drag as seen by clients.
type Drag struct {
	Source *reorder.Anchor `json:"source,omitempty"`
	Target *reorder.Anchor `json:"target,omitempty"`
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID        string             `json:"id"`
	Document  resume.Document    `json:"document"`
	Template  string             `json:"template"`
	Error     string             `json:"error,omitempty"`
	Busy      map[Operation]bool `json:"busy"`
	Drag      Drag               `json:"drag"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Session is one user's editing state.
type Session struct {
	ID string

	svc  Services
	busy map[Operation]*semaphore.Weighted

	mu        sync.Mutex
	doc       resume.Document
	template  rendering.Template
	gesture   reorder.Gesture
	errMsg    string
	running   map[Operation]bool
	updatedAt time.Time
	lastSeen  time.Time
}

// New creates a session holding the placeholder document and the default template.
func New(id string, svc Services) *Session {
	now := time.Now()
	s := &Session{
		ID:        id,
		svc:       svc,
		busy:      make(map[Operation]*semaphore.Weighted, len(Operations)),
		doc:       resume.Placeholder(),
		template:  rendering.Default(),
		running:   make(map[Operation]bool, len(Operations)),
		updatedAt: now,
		lastSeen:  now,
	}
	for _, op := range Operations {
		s.busy[op] = semaphore.NewWeighted(1)
	}
	return s
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	busy := make(map[Operation]bool, len(Operations))
	for _, op := range Operations {
		busy[op] = s.running[op]
	}
	source, target := s.gesture.Pending()
	return Snapshot{
		ID:        s.ID,
		Document:  s.doc.Clone(),
		Template:  s.template.Name(),
		Error:     s.errMsg,
		Busy:      busy,
		Drag:      Drag{Source: source, Target: target},
		UpdatedAt: s.updatedAt,
	}
}

// Document returns a copy of the current document.
func (s *Session) Document() resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// LastSeen reports when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// edit applies fn to the document under the lock and commits its result when fn
// succeeds.
func (s *Session) edit(fn func(resume.Document) (resume.Document, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	out, err := fn(s.doc)
	if err != nil {
		return err
	}
	s.commit(out)
	return nil
}

// commit must be called with mu held.
func (s *Session) commit(doc resume.Document) {
	s.doc = doc
	s.updatedAt = time.Now()
}

// UpdateContact sets one contact field.
func (s *Session) UpdateContact(field, value string) error {
	return s.edit(func(d resume.Document) (resume.Document, error) {
		return d.UpdateContactField(field, value)
	})
}

// UpdateSummary replaces the summary text.
func (s *Session) UpdateSummary(value string) {
	_ = s.edit(func(d resume.Document) (resume.Document, error) {
		return d.UpdateSummary(value), nil
	})
}

// AddItem appends a new item to a list section and returns its id.
func (s *Session) AddItem(section resume.SectionKey, fields map[string]string) (string, error) {
	var id string
	err := s.edit(func(d resume.Document) (resume.Document, error) {
		out, newID, err := d.AddListItem(section, fields)
		id = newID
		return out, err
	})
	return id, err
}

// UpdateItem sets one field of a list item. Unknown ids are ignored.
func (s *Session) UpdateItem(section resume.SectionKey, id, field, value string) error {
	return s.edit(func(d resume.Document) (resume.Document, error) {
		return d.UpdateListItemField(section, id, field, value)
	})
}

// RemoveItem deletes a list item. Unknown ids are ignored.
func (s *Session) RemoveItem(section resume.SectionKey, id string) error {
	return s.edit(func(d resume.Document) (resume.Document, error) {
		return d.RemoveListItem(section, id)
	})
}

// MoveSection moves a section within the section order. Out-of-range positions are
// ignored and reported as false.
func (s *Session) MoveSection(from, to int) bool {
	moved := false
	_ = s.edit(func(d resume.Document) (resume.Document, error) {
		out, err := reorder.MoveSection(d, from, to)
		if err != nil {
			return d, err
		}
		moved = from != to
		return out, nil
	})
	return moved
}

// MoveItem moves an item within a list section. Out-of-range positions are ignored
// and reported as false; a section without items is an error.
func (s *Session) MoveItem(section resume.SectionKey, from, to int) (bool, error) {
	if !section.IsList() {
		return false, &resume.SectionError{Section: string(section), Message: "not a list section"}
	}
	moved := false
	_ = s.edit(func(d resume.Document) (resume.Document, error) {
		out, err := reorder.MoveItem(d, section, from, to)
		if err != nil {
			return d, err
		}
		moved = from != to
		return out, nil
	})
	return moved, nil
}

// BeginDrag starts a drag at position index of scope.
func (s *Session) BeginDrag(scope reorder.Scope, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.gesture.Begin(s.doc, scope, index)
}

// EnterDrag records position index of scope as the drop target.
func (s *Session) EnterDrag(scope reorder.Scope, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.gesture.Enter(s.doc, scope, index)
}

// Drop completes the pending drag and reports whether anything moved.
func (s *Session) Drop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	out, moved := s.gesture.Drop(s.doc)
	if moved {
		s.commit(out)
	}
	return moved
}

// CancelDrag abandons the pending drag.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture.Cancel()
}

// SelectTemplate switches the template used for preview and export.
func (s *Session) SelectTemplate(name string) error {
	tmpl, err := rendering.Lookup(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	s.template = tmpl
	return nil
}

// Presentation lays out the current document with the selected template.
func (s *Session) Presentation() *rendering.Presentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.template.Render(s.doc, s.doc.SectionOrder)
}

// PreviewHTML renders the live preview.
func (s *Session) PreviewHTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := rendering.WriteHTML(&buf, s.Presentation()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PreviewLaTeX renders the document as LaTeX source.
func (s *Session) PreviewLaTeX() ([]byte, error) {
	var buf bytes.Buffer
	if err := rendering.WriteLaTeX(&buf, s.Presentation()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Error returns the current banner message, if any.
func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// DismissError clears the banner.
func (s *Session) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}
