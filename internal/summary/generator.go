package summary

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/resume"
)

// Generator asks a model for a summary.
type Generator struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// NewGenerator creates a Generator on the standard tier.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{Client: client, Tier: llm.TierStandard}
}

// Prompt returns the request sent to the model for doc.
func Prompt(doc resume.Document) (string, error) {
	bg := BuildContext(doc)
	return prompts.Render(prompts.SummaryFile, prompts.KeyGenerateSummary, map[string]string{
		"Experience": bg.Experience,
		"Education":  bg.Education,
		"Skills":     bg.Skills,
	})
}

// Generate returns a new summary for doc. The document itself is not modified; the
// caller decides whether to apply the result.
func (g *Generator) Generate(ctx context.Context, doc resume.Document) (string, error) {
	if BuildContext(doc).IsEmpty() {
		return "", &GenerationError{Message: "no experience, education or skills to summarise"}
	}

	prompt, err := Prompt(doc)
	if err != nil {
		return "", &GenerationError{Message: "failed to load prompt", Cause: err}
	}

	text, err := g.Client.GenerateContent(ctx, prompt, g.Tier)
	if err != nil {
		return "", &GenerationError{Message: "model call failed", Cause: err}
	}

	text = clean(text)
	if text == "" {
		return "", &GenerationError{Message: "model returned an empty summary"}
	}
	log.Printf("[SUMMARY] generated %d characters with %s", len(text), g.Client.GetModel(g.Tier))
	return text, nil
}

// clean drops surrounding whitespace and a single pair of wrapping quotes.
func clean(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			text = strings.TrimSpace(text[1 : len(text)-1])
		}
	}
	return text
}
