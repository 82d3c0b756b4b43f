package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/summary"
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Write a professional summary for a resume document",
	Long:  "Generates a professional summary from the experience, education and skills of a resume document. With --write the document is updated in place.",
	RunE:  runSummarize,
}

var (
	summarizeInput string
	summarizeWrite bool
)

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeInput, "in", "i", "", "Path to resume document JSON (required)")
	summarizeCmd.Flags().BoolVarP(&summarizeWrite, "write", "w", false, "Store the summary in the input document")

	if err := summarizeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if summarizeWrite && summarizeInput == "-" {
		return fmt.Errorf("--write needs a file, not stdin")
	}

	doc, err := readDocument(summarizeInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	text, err := summary.NewGenerator(client).Generate(ctx, doc)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintSummary(text)
	}

	if !summarizeWrite {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	out, err := marshalDocument(doc.UpdateSummary(text))
	if err != nil {
		return err
	}
	return writeOutput(summarizeInput, out, cmd.OutOrStdout())
}
