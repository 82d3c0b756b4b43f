// Package rendering lays out resume documents through swappable templates and writes them as HTML or LaTeX.
package rendering

import "strings"

// latexReplacer escapes the characters LaTeX treats specially: \ { } $ & % # ^ _ ~
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// hrefReplacer escapes only what hyperref cannot take verbatim inside \href.
var hrefReplacer = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`#`, `\#`,
)

// EscapeLaTeX escapes special LaTeX characters in user-entered text.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}

// EscapeHref prepares a URL for the first argument of \href.
func EscapeHref(url string) string {
	return hrefReplacer.Replace(url)
}
