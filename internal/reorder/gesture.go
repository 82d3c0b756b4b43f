package reorder

import "github.com/jonathan/resume-builder/internal/resume"

// Scope names the sequence a drag happens in: one of the list sections, or the
// section order itself.
type Scope string

// ScopeSections is the scope of drags that reorder whole sections.
const ScopeSections Scope = "sections"

// ParseScope accepts a list section key or "sections".
func ParseScope(s string) (Scope, error) {
	if Scope(s) == ScopeSections {
		return ScopeSections, nil
	}
	key, err := resume.ParseSectionKey(s)
	if err != nil {
		return "", err
	}
	if !key.IsList() {
		return "", &resume.SectionError{Section: s, Message: "section has no items to drag"}
	}
	return Scope(key), nil
}

// Anchor is one remembered end of a drag. Positions are stored as identities (item id,
// or section key for ScopeSections) and resolved to indices only when the drop happens,
// so edits made while the drag is in flight cannot redirect it to a different element.
type Anchor struct {
	Scope Scope  `json:"scope"`
	ID    string `json:"id"`
}

// Gesture is the pending state of one drag: a source set by Begin and a target set by
// Enter. Drop and Cancel always clear both. The zero value is an idle gesture.
type Gesture struct {
	source *Anchor
	target *Anchor
}

// Begin starts a drag from position index in scope. An index that does not address an
// element clears the gesture and returns false.
func (g *Gesture) Begin(doc resume.Document, scope Scope, index int) bool {
	g.Cancel()
	id, ok := idAt(doc, scope, index)
	if !ok {
		return false
	}
	g.source = &Anchor{Scope: scope, ID: id}
	return true
}

// Enter remembers position index in scope as the current drop target. Invalid
// positions are ignored and leave any earlier target in place.
func (g *Gesture) Enter(doc resume.Document, scope Scope, index int) bool {
	if g.source == nil {
		return false
	}
	id, ok := idAt(doc, scope, index)
	if !ok {
		return false
	}
	g.target = &Anchor{Scope: scope, ID: id}
	return true
}

// Drop applies the remembered move to doc. The move is skipped, and doc returned
// unchanged, when no target was entered, when source and target lie in different
// scopes, or when either element no longer exists. The gesture is cleared in all cases.
func (g *Gesture) Drop(doc resume.Document) (resume.Document, bool) {
	source, target := g.source, g.target
	g.Cancel()

	if source == nil || target == nil || source.Scope != target.Scope {
		return doc, false
	}
	from := indexOf(doc, source.Scope, source.ID)
	to := indexOf(doc, target.Scope, target.ID)
	if from < 0 || to < 0 || from == to {
		return doc, false
	}

	var (
		out resume.Document
		err error
	)
	if source.Scope == ScopeSections {
		out, err = MoveSection(doc, from, to)
	} else {
		out, err = MoveItem(doc, resume.SectionKey(source.Scope), from, to)
	}
	if err != nil {
		return doc, false
	}
	return out, true
}

// Cancel abandons the drag.
func (g *Gesture) Cancel() {
	g.source = nil
	g.target = nil
}

// Pending returns copies of the remembered source and target, nil when unset.
func (g *Gesture) Pending() (source, target *Anchor) {
	if g.source != nil {
		s := *g.source
		source = &s
	}
	if g.target != nil {
		t := *g.target
		target = &t
	}
	return source, target
}

func idAt(doc resume.Document, scope Scope, index int) (string, bool) {
	if scope == ScopeSections {
		if index < 0 || index >= len(doc.SectionOrder) {
			return "", false
		}
		return string(doc.SectionOrder[index]), true
	}
	return doc.IDAt(resume.SectionKey(scope), index)
}

func indexOf(doc resume.Document, scope Scope, id string) int {
	if scope == ScopeSections {
		for i, key := range doc.SectionOrder {
			if string(key) == id {
				return i
			}
		}
		return -1
	}
	return doc.IndexOf(resume.SectionKey(scope), id)
}
