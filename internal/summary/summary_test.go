package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/llm/llmtest"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContext_Placeholder(t *testing.T) {
	bg := BuildContext(resume.Placeholder())

	assert.Equal(t,
		"- Software Engineer at Awesome Company (Jan 2022 - Present): "+
			"Developed and maintained web applications using React and TypeScript., "+
			"Collaborated with cross-functional teams to deliver high-quality software., "+
			"Improved application performance by 20% through code optimization.",
		bg.Experience)
	assert.Equal(t, "- B.S. in Computer Science from University of Technology", bg.Education)
	assert.Equal(t,
		"Programming Languages: JavaScript, TypeScript, Python, HTML, CSS\n"+
			"Frameworks & Libraries: React, Node.js, Express, Tailwind CSS\n"+
			"Tools & Platforms: Git, Docker, AWS, Vercel",
		bg.Skills)
	assert.False(t, bg.IsEmpty())
}

func TestBuildContext_Empty(t *testing.T) {
	bg := BuildContext(resume.Document{Summary: "kept out", Contact: resume.Contact{Name: "Ada"}})
	assert.True(t, bg.IsEmpty())
}

func TestPrompt(t *testing.T) {
	prompt, err := Prompt(resume.Placeholder())
	require.NoError(t, err)

	assert.Contains(t, prompt, "professional summary (2-4 sentences)")
	assert.Contains(t, prompt, "Experience:\n- Software Engineer at Awesome Company")
	assert.Contains(t, prompt, "Education:\n- B.S. in Computer Science")
	assert.Contains(t, prompt, "Skills:\nProgramming Languages:")
	assert.NotContains(t, prompt, "{{")
	assert.NotContains(t, prompt, "Your Name")
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{name: "plain", response: "Engineer with five years of experience.", expected: "Engineer with five years of experience."},
		{name: "whitespace", response: "\n  Engineer.  \n", expected: "Engineer."},
		{name: "quoted", response: `"Engineer who ships."`, expected: "Engineer who ships."},
		{name: "inner quotes kept", response: `An "engineer" who ships.`, expected: `An "engineer" who ships.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &llmtest.MockClient{
				GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
					return tt.response, nil
				},
			}
			got, err := NewGenerator(mock).Generate(context.Background(), resume.Placeholder())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)

			calls := mock.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, "GenerateContent", calls[0].Method)
			assert.Equal(t, llm.TierStandard, calls[0].Tier)
		})
	}
}

func TestGenerate_DoesNotModifyDocument(t *testing.T) {
	doc := resume.Placeholder()
	mock := &llmtest.MockClient{
		GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "New summary.", nil
		},
	}

	_, err := NewGenerator(mock).Generate(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, resume.Placeholder(), doc)
}

func TestGenerate_Failures(t *testing.T) {
	boom := errors.New("deadline exceeded")

	t.Run("model error", func(t *testing.T) {
		mock := &llmtest.MockClient{
			GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
				return "", boom
			},
		}
		_, err := NewGenerator(mock).Generate(context.Background(), resume.Placeholder())

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty response", func(t *testing.T) {
		mock := &llmtest.MockClient{
			GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
				return "   ", nil
			},
		}
		_, err := NewGenerator(mock).Generate(context.Background(), resume.Placeholder())

		var genErr *GenerationError
		assert.ErrorAs(t, err, &genErr)
	})

	t.Run("nothing to summarise", func(t *testing.T) {
		mock := &llmtest.MockClient{}
		_, err := NewGenerator(mock).Generate(context.Background(), resume.Document{})

		var genErr *GenerationError
		assert.ErrorAs(t, err, &genErr)
		assert.Empty(t, mock.Calls())
	})
}
