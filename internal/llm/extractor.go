// Package llm - extractor.go provides schema-described structured extraction prompts.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "Resume")
	Description string        // Preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model, as a JSON sketch
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildSchemaPrompt renders the task description and the expected output structure.
// It is used on its own when the input travels as an attached document.
func BuildSchemaPrompt(schema ExtractionSchema) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the input, do not invent details.\n")
	sb.WriteString("- Use an empty string or empty list when something is not present.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder
	sb.WriteString(BuildSchemaPrompt(schema))
	sb.WriteString("\nInput text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// ResumeSchema returns the extraction schema for a whole resume. List items carry
// no ids; callers assign their own.
func ResumeSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Resume",
		Description: `You are an expert resume parser. Extract the information from this resume and structure it as JSON.
For experience descriptions, make each accomplishment or responsibility a separate string in an array.
For skills, group them into logical categories and give the skills of each category as a single comma-separated string.`,
		Fields: []SchemaField{
			{
				Name:        "contact",
				Type:        `{"name": "string", "email": "string", "phone": "string", "linkedin": "string", "github": "string", "website": "string", "location": "string"}`,
				Description: "Contact details as written, without adding URL schemes",
				Required:    true,
			},
			{
				Name:        "summary",
				Type:        `"string"`,
				Description: "A professional summary of 2-4 sentences",
			},
			{
				Name:        "experience",
				Type:        `[{"company": "string", "title": "string", "startDate": "string", "endDate": "string", "location": "string", "description": ["string"]}]`,
				Description: "Dates like 'Jan 2022' or '2022'; endDate may be 'Present'. Description items start with an action verb",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        `[{"institution": "string", "degree": "string", "startDate": "string", "endDate": "string", "location": "string"}]`,
				Description: "One entry per degree or program",
				Required:    true,
			},
			{
				Name:        "projects",
				Type:        `[{"name": "string", "description": "string", "link": "string"}]`,
				Description: "Personal or professional projects, omitted if none are listed",
			},
			{
				Name:        "skills",
				Type:        `[{"category": "string", "items": "string"}]`,
				Description: "Categories such as 'Languages', 'Frameworks', 'Developer Tools'; items is comma-separated",
				Required:    true,
			},
		},
	}
}
