package rendering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/resume-builder/internal/resume"
)

// Template renders a document under a given section order. Implementations must not
// modify the document.
type Template interface {
	Name() string
	Render(doc resume.Document, order []resume.SectionKey) *Presentation
}

// Layout is the data-driven Template used by every built-in template. Keys listed in
// Pinned are bound to the sidebar in that fixed order; every other key flows through
// the main column in the caller's order.
type Layout struct {
	DisplayName  string
	Style        HeaderStyle
	Pinned       []resume.SectionKey
	Headings     map[resume.SectionKey]string
	CompanyFirst bool
}

// Modern is a two-column layout with education and skills pinned to the sidebar.
var Modern = &Layout{
	DisplayName: "Modern",
	Style:       HeaderSidebar,
	Pinned:      []resume.SectionKey{resume.SectionEducation, resume.SectionSkills},
	Headings: map[resume.SectionKey]string{
		resume.SectionSummary:    "Professional Summary",
		resume.SectionExperience: "Work Experience",
		resume.SectionEducation:  "Education",
		resume.SectionProjects:   "Projects",
		resume.SectionSkills:     "Skills",
	},
}

// Classic is a single-column layout in which every section follows the section order.
var Classic = &Layout{
	DisplayName: "Classic",
	Style:       HeaderCentered,
	Headings: map[resume.SectionKey]string{
		resume.SectionSummary:    "SUMMARY",
		resume.SectionExperience: "EXPERIENCE",
		resume.SectionEducation:  "EDUCATION",
		resume.SectionProjects:   "PROJECTS",
		resume.SectionSkills:     "SKILLS",
	},
	CompanyFirst: true,
}

var registry = []Template{Modern, Classic}

// Templates lists the available templates. The first one is the default selection.
func Templates() []Template {
	return slices.Clone(registry)
}

// Default returns the template new sessions start with.
func Default() Template {
	return registry[0]
}

// Lookup finds a template by name, ignoring case.
func Lookup(name string) (Template, error) {
	for _, t := range registry {
		if strings.EqualFold(t.Name(), name) {
			return t, nil
		}
	}
	return nil, &TemplateError{Message: fmt.Sprintf("unknown template %q", name)}
}

// Name implements Template.
func (l *Layout) Name() string {
	return l.DisplayName
}

// Render implements Template. An order that is not a permutation of the section keys
// is replaced by the default order so every key is still placed exactly once.
// The projects section is left out entirely when there are no projects.
func (l *Layout) Render(doc resume.Document, order []resume.SectionKey) *Presentation {
	if resume.ValidateSectionOrder(order) != nil {
		order = resume.DefaultSectionOrder()
	}

	p := &Presentation{
		Template: l.DisplayName,
		Style:    l.Style,
		Header:   buildHeader(doc.Contact),
		Sidebar:  []Section{},
		Main:     []Section{},
	}
	for _, key := range l.Pinned {
		if l.hidden(doc, key) {
			continue
		}
		p.Sidebar = append(p.Sidebar, l.formatSection(doc, key))
	}
	for _, key := range order {
		if l.isPinned(key) || l.hidden(doc, key) {
			continue
		}
		p.Main = append(p.Main, l.formatSection(doc, key))
	}
	return p
}

func (l *Layout) isPinned(key resume.SectionKey) bool {
	return slices.Contains(l.Pinned, key)
}

func (l *Layout) hidden(doc resume.Document, key resume.SectionKey) bool {
	return key == resume.SectionProjects && len(doc.Projects) == 0
}

func (l *Layout) heading(key resume.SectionKey) string {
	if h, ok := l.Headings[key]; ok {
		return h
	}
	return string(key)
}
