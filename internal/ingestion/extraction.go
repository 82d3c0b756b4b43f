package ingestion

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// Extracted is the model's view of a resume. Every field may be missing or null, and
// list items have no ids.
type Extracted struct {
	Contact    *resume.Contact       `json:"contact"`
	Summary    string                `json:"summary"`
	Experience []ExtractedExperience `json:"experience"`
	Education  []ExtractedEducation  `json:"education"`
	Projects   []ExtractedProject    `json:"projects"`
	Skills     []ExtractedSkillGroup `json:"skills"`
}

type ExtractedExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Location    string `json:"location"`
	Description lines  `json:"description"`
}

type ExtractedEducation struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Location    string `json:"location"`
}

type ExtractedProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type ExtractedSkillGroup struct {
	Category string `json:"category"`
	Items    string `json:"items"`
}

// lines accepts either a JSON array of strings or a single newline-separated string.
type lines []string

func (l *lines) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = resume.SplitLines(single)
		return nil
	}
	var many []*string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	out := make([]string, 0, len(many))
	for _, s := range many {
		if s != nil {
			out = append(out, *s)
		}
	}
	*l = out
	return nil
}

// Normalize converts an extraction into a document: every list item gets a fresh id,
// missing lists become empty lists and blank bullet lines are dropped. The section
// order is the default one; callers that keep their own order replace it.
func Normalize(x Extracted) resume.Document {
	doc := resume.Document{
		Summary:      strings.TrimSpace(x.Summary),
		Experience:   make([]resume.Experience, 0, len(x.Experience)),
		Education:    make([]resume.Education, 0, len(x.Education)),
		Projects:     make([]resume.Project, 0, len(x.Projects)),
		Skills:       make([]resume.SkillGroup, 0, len(x.Skills)),
		SectionOrder: resume.DefaultSectionOrder(),
	}
	if x.Contact != nil {
		doc.Contact = *x.Contact
	}

	for _, e := range x.Experience {
		bullets := make([]string, 0, len(e.Description))
		for _, b := range e.Description {
			if b = strings.TrimSpace(b); b != "" {
				bullets = append(bullets, b)
			}
		}
		doc.Experience = append(doc.Experience, resume.Experience{
			ID:          resume.NewID(),
			Company:     e.Company,
			Title:       e.Title,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Location:    e.Location,
			Description: bullets,
		})
	}
	for _, e := range x.Education {
		doc.Education = append(doc.Education, resume.Education{
			ID:          resume.NewID(),
			Institution: e.Institution,
			Degree:      e.Degree,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Location:    e.Location,
		})
	}
	for _, p := range x.Projects {
		doc.Projects = append(doc.Projects, resume.Project{
			ID:          resume.NewID(),
			Name:        p.Name,
			Description: p.Description,
			Link:        p.Link,
		})
	}
	for _, s := range x.Skills {
		doc.Skills = append(doc.Skills, resume.SkillGroup{
			ID:       resume.NewID(),
			Category: s.Category,
			Items:    s.Items,
		})
	}
	return doc
}

// ParseResponse turns a raw model response into a document. Code fences and chatter
// around the JSON are tolerated.
func ParseResponse(raw string) (resume.Document, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateExtraction(cleaned); err != nil {
		return resume.Document{}, &ExtractionError{Message: "model response does not match the resume schema", Cause: err}
	}

	var x Extracted
	if err := json.Unmarshal([]byte(cleaned), &x); err != nil {
		return resume.Document{}, &ExtractionError{Message: "failed to decode model response", Cause: err}
	}
	return Normalize(x), nil
}

// Extractor asks a model to read a resume.
type Extractor struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// NewExtractor creates an Extractor using the standard tier.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{Client: client, Tier: llm.TierStandard}
}

// ExtractFile sends the document itself to the model.
func (e *Extractor) ExtractFile(ctx context.Context, kind Kind, data []byte) (resume.Document, error) {
	prompt, err := prompts.Render(prompts.ResumeFile, prompts.KeyExtractFromFile, map[string]string{
		"Schema": llm.BuildSchemaPrompt(llm.ResumeSchema()),
		"Kind":   kind.Label(),
	})
	if err != nil {
		return resume.Document{}, &ExtractionError{Message: "failed to load prompt", Cause: err}
	}

	raw, err := e.Client.GenerateJSONFromFile(ctx, prompt, llm.FilePart{MIMEType: kind.MIMEType(), Data: data}, e.Tier)
	if err != nil {
		return resume.Document{}, &ExtractionError{Message: "model call failed", Cause: err}
	}
	return ParseResponse(raw)
}

// ExtractText sends text that was already pulled out of the document.
func (e *Extractor) ExtractText(ctx context.Context, kind Kind, text string) (resume.Document, error) {
	if strings.TrimSpace(text) == "" {
		return resume.Document{}, &ExtractionError{Message: "no text could be read from the file"}
	}

	prompt, err := prompts.Render(prompts.ResumeFile, prompts.KeyExtractFromText, map[string]string{
		"Schema": llm.BuildSchemaPrompt(llm.ResumeSchema()),
		"Kind":   kind.Label(),
		"Text":   text,
	})
	if err != nil {
		return resume.Document{}, &ExtractionError{Message: "failed to load prompt", Cause: err}
	}

	raw, err := e.Client.GenerateJSON(ctx, prompt, e.Tier)
	if err != nil {
		return resume.Document{}, &ExtractionError{Message: "model call failed", Cause: err}
	}
	return ParseResponse(raw)
}
