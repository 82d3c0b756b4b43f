package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/resume"
)

// HeaderStyle selects how a page lays out the contact header and its regions.
type HeaderStyle string

const (
	// HeaderSidebar puts the name and contact list at the top of a left sidebar.
	HeaderSidebar HeaderStyle = "sidebar"
	// HeaderCentered puts the name and a single contact line above one column.
	HeaderCentered HeaderStyle = "centered"
)

// Presentation is the laid-out form of a document for one template.
type Presentation struct {
	Template string      `json:"template"`
	Style    HeaderStyle `json:"style"`
	Header   Header      `json:"header"`
	Sidebar  []Section   `json:"sidebar"`
	Main     []Section   `json:"main"`
}

// Sections returns the main flow followed by the sidebar.
func (p *Presentation) Sections() []Section {
	out := make([]Section, 0, len(p.Main)+len(p.Sidebar))
	out = append(out, p.Main...)
	return append(out, p.Sidebar...)
}

// Header is the contact block shown above or beside the sections.
type Header struct {
	Name     string        `json:"name"`
	Contacts []ContactItem `json:"contacts"`
}

// ContactItem is one non-empty contact detail. Short is the compact label used when
// all details share a single line.
type ContactItem struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Short string `json:"short"`
	URL   string `json:"url,omitempty"`
}

// Section is one rendered resume section.
type Section struct {
	Key     resume.SectionKey `json:"key"`
	Heading string            `json:"heading"`
	Blocks  []Block           `json:"blocks"`
}

// Block is one entry inside a section. Unused fields stay empty.
type Block struct {
	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Dates    string   `json:"dates,omitempty"`
	Location string   `json:"location,omitempty"`
	Link     string   `json:"link,omitempty"`
	LinkURL  string   `json:"linkUrl,omitempty"`
	Body     string   `json:"body,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// NormalizeURL prefixes https:// unless the link already starts with http.
func NormalizeURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	return "https://" + link
}

func buildHeader(c resume.Contact) Header {
	h := Header{Name: c.Name}
	add := func(label, text, short, url string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		h.Contacts = append(h.Contacts, ContactItem{Label: label, Text: text, Short: short, URL: url})
	}
	add("Location", c.Location, c.Location, "")
	add("Phone", c.Phone, c.Phone, "tel:"+c.Phone)
	add("Email", c.Email, c.Email, "mailto:"+c.Email)
	add("LinkedIn", c.LinkedIn, "LinkedIn", NormalizeURL(c.LinkedIn))
	add("GitHub", c.GitHub, "GitHub", NormalizeURL(c.GitHub))
	add("Website", c.Website, "Website", NormalizeURL(c.Website))
	return h
}

func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

// formatSection builds the blocks for one key. List order is taken as-is.
func (l *Layout) formatSection(doc resume.Document, key resume.SectionKey) Section {
	s := Section{Key: key, Heading: l.heading(key), Blocks: []Block{}}

	switch key {
	case resume.SectionSummary:
		if doc.Summary != "" {
			s.Blocks = append(s.Blocks, Block{Body: doc.Summary})
		}
	case resume.SectionExperience:
		for _, e := range doc.Experience {
			b := Block{
				Title:    e.Title,
				Subtitle: e.Company,
				Dates:    dateRange(e.StartDate, e.EndDate),
				Location: e.Location,
				Bullets:  nonEmptyLines(e.Description),
			}
			if l.CompanyFirst {
				b.Title, b.Subtitle = e.Company, e.Title
			}
			s.Blocks = append(s.Blocks, b)
		}
	case resume.SectionEducation:
		for _, e := range doc.Education {
			s.Blocks = append(s.Blocks, Block{
				Title:    e.Institution,
				Subtitle: e.Degree,
				Dates:    dateRange(e.StartDate, e.EndDate),
				Location: e.Location,
			})
		}
	case resume.SectionProjects:
		for _, p := range doc.Projects {
			s.Blocks = append(s.Blocks, Block{
				Title:   p.Name,
				Body:    p.Description,
				Link:    p.Link,
				LinkURL: NormalizeURL(p.Link),
			})
		}
	case resume.SectionSkills:
		for _, g := range doc.Skills {
			s.Blocks = append(s.Blocks, Block{Title: g.Category, Body: g.Items})
		}
	}
	return s
}

func nonEmptyLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
