package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume document as a PDF",
	Long:  "Renders a resume document with a template, captures the preview in headless Chrome and writes it as a single-page PDF named after the candidate.",
	RunE:  runExport,
}

var (
	exportInput    string
	exportTemplate string
	exportOutDir   string
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to resume document JSON, or - for stdin (required)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template name (default from config)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Directory for the PDF (default from config)")

	if err := exportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	templateName := exportTemplate
	if templateName == "" {
		templateName = cfg.Template
	}
	outDir := exportOutDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	doc, err := readDocument(exportInput, cmd.InOrStdin())
	if err != nil {
		return err
	}
	p, err := present(doc, templateName)
	if err != nil {
		return err
	}

	ctx := context.Background()
	exporter, cleanup, err := newExporter(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := exporter.Export(ctx, p)
	if err != nil {
		return err
	}

	path, err := export.LocalSink{Dir: outDir}.Save(ctx, res.Filename, res.PDF)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintExport(res, path)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
