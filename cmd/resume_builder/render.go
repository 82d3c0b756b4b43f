package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume document as HTML or LaTeX",
	Long:  "Renders a resume document JSON file with one of the built-in templates, producing the preview HTML or LaTeX source.",
	RunE:  runRender,
}

var (
	renderInput    string
	renderFormat   string
	renderTemplate string
	renderOutput   string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to resume document JSON, or - for stdin (required)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html or tex")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template name (default from config)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output file (default stdout)")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	templateName := renderTemplate
	if templateName == "" {
		templateName = cfg.Template
	}

	doc, err := readDocument(renderInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out, err := renderDocument(doc, templateName, renderFormat)
	if err != nil {
		return err
	}
	if err := writeOutput(renderOutput, out, cmd.OutOrStdout()); err != nil {
		return err
	}
	if renderOutput != "" && renderOutput != "-" {
		fmt.Fprintf(os.Stderr, "Rendered %s (%s, %s template)\n", renderOutput, renderFormat, templateName)
	}
	return nil
}

// renderDocument renders doc with the named template in format "html" or "tex".
func renderDocument(doc resume.Document, templateName, format string) ([]byte, error) {
	p, err := present(doc, templateName)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "html":
		err = rendering.WriteHTML(&buf, p)
	case "tex", "latex":
		err = rendering.WriteLaTeX(&buf, p)
	default:
		return nil, fmt.Errorf("unknown format %q: expected html or tex", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
