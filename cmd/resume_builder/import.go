package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Read an existing resume into a document",
	Long:  "Sends a PDF, DOCX or plain text resume to the language model and writes the extracted resume document as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	importOutput string
	importMIME   string
)

func init() {
	importCmd.Flags().StringVarP(&importOutput, "out", "o", "", "Output file for the document JSON (default stdout)")
	importCmd.Flags().StringVar(&importMIME, "mime-type", "", "MIME type of the file (default guessed from the extension)")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	mimeType := importMIME
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(path))
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	importer := ingestion.NewImporter(ingestion.NewExtractor(client), cfg.InlineLimit)
	res, err := importer.Import(ctx, ingestion.Upload{
		Filename: filepath.Base(path),
		MIMEType: mimeType,
		Data:     data,
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintImportMetadata(res.Metadata)
		printer.PrintDocument(&res.Document)
	}

	out, err := marshalDocument(res.Document)
	if err != nil {
		return err
	}
	return writeOutput(importOutput, out, cmd.OutOrStdout())
}
