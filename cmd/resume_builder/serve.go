package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that holds editing sessions and exposes their operations as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	jwtConfig, err := config.NewJWTConfig(true)
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtConfig.Ephemeral {
		log.Printf("[server] JWT_SECRET not set: using a random secret, sessions end on restart")
	}

	ctx := context.Background()
	svc, cleanup, err := newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ttl := cfg.IdleTTL()
	store := session.NewStore(svc, ttl, sweepInterval(ttl))

	srv, err := server.New(server.Options{
		Config:  &cfg,
		Store:   store,
		Tokens:  server.NewJWTService(jwtConfig),
		Limiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	})
	if err != nil {
		store.Stop()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// sweepInterval checks for idle sessions a few times per ttl, at most once a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Minute)
}
