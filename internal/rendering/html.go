package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var htmlFuncs = template.FuncMap{
	"safeURL": safeURL,
}

// htmlPages holds one parsed page per header style.
var htmlPages = map[HeaderStyle]*template.Template{
	HeaderSidebar:  mustParsePage(HeaderSidebar),
	HeaderCentered: mustParsePage(HeaderCentered),
}

func mustParsePage(style HeaderStyle) *template.Template {
	return template.Must(template.New("page.html.tmpl").Funcs(htmlFuncs).ParseFS(templateFS,
		"templates/page.html.tmpl",
		"templates/section.html.tmpl",
		fmt.Sprintf("templates/%s.html.tmpl", style),
	))
}

// safeURL lets http, https, mailto and tel links through html/template's URL filter.
// Anything else is neutralised.
func safeURL(raw string) template.URL {
	lower := strings.ToLower(raw)
	for _, scheme := range []string{"http://", "https://", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, scheme) {
			return template.URL(raw)
		}
	}
	return template.URL("#")
}

// WriteHTML writes p as a standalone HTML page. The resume itself lives in the
// #resume-preview element, which carries the on-screen scale and shadow.
func WriteHTML(w io.Writer, p *Presentation) error {
	if p == nil {
		return &RenderError{Message: "nothing to render"}
	}
	page, ok := htmlPages[p.Style]
	if !ok {
		return &TemplateError{Message: fmt.Sprintf("no page layout for style %q", p.Style)}
	}

	// A failed execution writes nothing to w.
	var buf bytes.Buffer
	if err := page.Execute(&buf, p); err != nil {
		return &TemplateError{Message: "failed to execute page template", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write page", Cause: err}
	}
	return nil
}

// RenderHTML is a convenience wrapper returning the page as a string.
func RenderHTML(p *Presentation) (string, error) {
	var sb strings.Builder
	if err := WriteHTML(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}
