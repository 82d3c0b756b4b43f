package summary

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/resume"
)

// Background is the flattened text the summary prompt is built from.
type Background struct {
	Experience string
	Education  string
	Skills     string
}

// BuildContext flattens the experience, education and skills of a document into one
// line per entry. Contact details, projects and the current summary are not used.
func BuildContext(doc resume.Document) Background {
	experience := make([]string, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		experience = append(experience, fmt.Sprintf("- %s at %s (%s - %s): %s",
			e.Title, e.Company, e.StartDate, e.EndDate, strings.Join(e.Description, ", ")))
	}

	education := make([]string, 0, len(doc.Education))
	for _, e := range doc.Education {
		education = append(education, fmt.Sprintf("- %s from %s", e.Degree, e.Institution))
	}

	skills := make([]string, 0, len(doc.Skills))
	for _, s := range doc.Skills {
		skills = append(skills, fmt.Sprintf("%s: %s", s.Category, s.Items))
	}

	return Background{
		Experience: strings.Join(experience, "\n"),
		Education:  strings.Join(education, "\n"),
		Skills:     strings.Join(skills, "\n"),
	}
}

// IsEmpty reports whether there is nothing to summarise.
func (b Background) IsEmpty() bool {
	return b.Experience == "" && b.Education == "" && b.Skills == ""
}
