// Package resume defines the resume document model and its controlled mutation operations.
//
// A Document is treated as a value: every operation returns a new Document and leaves its
// receiver untouched, so callers can hold on to earlier snapshots without defensive copies.
package resume

import "fmt"

// SectionKey identifies one of the five fixed resume sections.
type SectionKey string

// Section keys. The set is closed; SectionOrder is always a permutation of it.
const (
	SectionSummary    SectionKey = "summary"
	SectionExperience SectionKey = "experience"
	SectionEducation  SectionKey = "education"
	SectionProjects   SectionKey = "projects"
	SectionSkills     SectionKey = "skills"
)

// AllSections lists every section key in canonical order.
var AllSections = []SectionKey{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionSkills,
}

// ParseSectionKey converts a string into a SectionKey, rejecting unknown values.
func ParseSectionKey(s string) (SectionKey, error) {
	for _, key := range AllSections {
		if string(key) == s {
			return key, nil
		}
	}
	return "", &SectionError{Section: s}
}

// IsList reports whether the section holds an ordered list of identified items.
func (k SectionKey) IsList() bool {
	switch k {
	case SectionExperience, SectionEducation, SectionProjects, SectionSkills:
		return true
	default:
		return false
	}
}

// Contact holds the free-text contact details shown in every template header.
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
}

// Experience is one work history entry. Description holds one bullet per line.
type Experience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Location    string   `json:"location"`
	Description []string `json:"description"`
}

// Education is one education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Location    string `json:"location"`
}

// Project is one project entry. Link is URL-like text; the scheme is optional.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// SkillGroup is a labelled group of skills. Items is kept as the raw comma-separated
// string the user typed and is never split by the model or the renderer.
type SkillGroup struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Items    string `json:"items"`
}

// Document is the root resume aggregate.
type Document struct {
	Contact      Contact      `json:"contact"`
	Summary      string       `json:"summary"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Projects     []Project    `json:"projects"`
	Skills       []SkillGroup `json:"skills"`
	SectionOrder []SectionKey `json:"sectionOrder"`
}

// DefaultSectionOrder returns a fresh copy of the canonical section order.
func DefaultSectionOrder() []SectionKey {
	order := make([]SectionKey, len(AllSections))
	copy(order, AllSections)
	return order
}

// ValidateSectionOrder checks that order is a permutation of the five section keys.
func ValidateSectionOrder(order []SectionKey) error {
	if len(order) != len(AllSections) {
		return &OrderError{Message: fmt.Sprintf("expected %d sections, got %d", len(AllSections), len(order))}
	}
	seen := make(map[SectionKey]bool, len(order))
	for _, key := range order {
		if _, err := ParseSectionKey(string(key)); err != nil {
			return &OrderError{Message: fmt.Sprintf("unknown section %q", key)}
		}
		if seen[key] {
			return &OrderError{Message: fmt.Sprintf("duplicate section %q", key)}
		}
		seen[key] = true
	}
	return nil
}

// Clone returns a deep copy of the document. Nil lists stay nil.
func (d Document) Clone() Document {
	out := d
	out.Experience = cloneSlice(d.Experience)
	for i := range out.Experience {
		out.Experience[i].Description = cloneSlice(d.Experience[i].Description)
	}
	out.Education = cloneSlice(d.Education)
	out.Projects = cloneSlice(d.Projects)
	out.Skills = cloneSlice(d.Skills)
	out.SectionOrder = cloneSlice(d.SectionOrder)
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// ListLen returns the number of items in a list section, or 0 for non-list sections.
func (d Document) ListLen(section SectionKey) int {
	switch section {
	case SectionExperience:
		return len(d.Experience)
	case SectionEducation:
		return len(d.Education)
	case SectionProjects:
		return len(d.Projects)
	case SectionSkills:
		return len(d.Skills)
	default:
		return 0
	}
}

// ItemIDs returns the ids of a list section in list order.
func (d Document) ItemIDs(section SectionKey) []string {
	var ids []string
	switch section {
	case SectionExperience:
		for _, item := range d.Experience {
			ids = append(ids, item.ID)
		}
	case SectionEducation:
		for _, item := range d.Education {
			ids = append(ids, item.ID)
		}
	case SectionProjects:
		for _, item := range d.Projects {
			ids = append(ids, item.ID)
		}
	case SectionSkills:
		for _, item := range d.Skills {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// IndexOf returns the current position of the item with the given id, or -1.
func (d Document) IndexOf(section SectionKey, id string) int {
	for i, itemID := range d.ItemIDs(section) {
		if itemID == id {
			return i
		}
	}
	return -1
}

// IDAt returns the id at position index in a list section.
func (d Document) IDAt(section SectionKey, index int) (string, bool) {
	ids := d.ItemIDs(section)
	if index < 0 || index >= len(ids) {
		return "", false
	}
	return ids[index], true
}
