package rendering

import (
	"bytes"
	"io"
	"strings"
	"text/template"
)

// latexPage renders every template as a single column: main flow first, then the
// sidebar sections.
var latexPage = template.Must(template.New("resume.tex.tmpl").
	Delims("<<", ">>").
	Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"href":   EscapeHref,
	}).
	ParseFS(templateFS, "templates/resume.tex.tmpl"))

// WriteLaTeX writes p as a LaTeX source document.
func WriteLaTeX(w io.Writer, p *Presentation) error {
	if p == nil {
		return &RenderError{Message: "nothing to render"}
	}

	var buf bytes.Buffer
	if err := latexPage.Execute(&buf, p); err != nil {
		return &TemplateError{Message: "failed to execute LaTeX template", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write LaTeX", Cause: err}
	}
	return nil
}

// RenderLaTeX returns the LaTeX source for p.
func RenderLaTeX(p *Presentation) (string, error) {
	var sb strings.Builder
	if err := WriteLaTeX(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}
