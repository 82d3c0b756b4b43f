package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/summary"
)

// llmConfig builds the model configuration for cfg's provider.
func llmConfig(cfg config.Config) *llm.Config {
	var lc *llm.Config
	if strings.EqualFold(cfg.Provider, string(llm.ProviderVertex)) {
		lc = llm.DefaultVertexConfig(cfg.VertexProject, cfg.VertexLocation)
	} else {
		lc = llm.DefaultGeminiConfig()
	}
	if cfg.Model != "" {
		lc = lc.WithModel(llm.TierStandard, cfg.Model)
	}
	return lc
}

// newLLMClient connects to the configured model provider.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	client, err := llm.NewClient(ctx, llmConfig(cfg), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newExporter builds the headless Chrome exporter. When an export bucket is
// configured, exports are archived there too; the returned cleanup closes that client.
func newExporter(ctx context.Context, cfg config.Config) (*export.Exporter, func(), error) {
	capturer := export.NewChromeCapturer(cfg.ChromePath, cfg.CaptureScale)
	capturer.Verbose = cfg.Verbose

	if cfg.ExportBucket == "" {
		return export.NewExporter(capturer, nil), func() {}, nil
	}
	sink, err := export.NewGCSSink(ctx, cfg.ExportBucket, cfg.ExportPrefix)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := sink.Close(); err != nil {
			log.Printf("[export] failed to close storage client: %v", err)
		}
	}
	return export.NewExporter(capturer, sink), cleanup, nil
}

// newServices wires the collaborators of the long-running session operations.
// Without model credentials, import and summary generation are disabled rather than
// failing the whole server.
func newServices(ctx context.Context, cfg config.Config) (session.Services, func(), error) {
	var (
		svc      session.Services
		closers  []func()
		cleanupF = func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	)

	if cfg.APIKey != "" || strings.EqualFold(cfg.Provider, string(llm.ProviderVertex)) {
		client, err := newLLMClient(ctx, cfg)
		if err != nil {
			return session.Services{}, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		svc.Importer = ingestion.NewImporter(ingestion.NewExtractor(client), cfg.InlineLimit)
		svc.Summaries = summary.NewGenerator(client)
	} else {
		log.Printf("[server] GEMINI_API_KEY not set: import and summary generation are disabled")
	}

	exporter, closeExporter, err := newExporter(ctx, cfg)
	if err != nil {
		cleanupF()
		return session.Services{}, nil, err
	}
	closers = append(closers, closeExporter)
	svc.Exporter = exporter

	return svc, cleanupF, nil
}
