// Package main is the entry point for Word Battle.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/wordbattle/internal/game"
	"github.com/samdwyer/wordbattle/internal/gamedata"
	"github.com/samdwyer/wordbattle/internal/storage/sqlite"
	"github.com/samdwyer/wordbattle/internal/telemetry"
	"github.com/samdwyer/wordbattle/internal/words"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_WORDBATTLE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	cfg, err := game.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, cfg.OTelEnabled)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	catalog, err := gamedata.LoadCatalogFrom(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load letter catalog: %v", err)
	}
	dict, err := words.Load()
	if err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}
	deps := game.Deps{Catalog: catalog, Dictionary: dict}

	if cfg.HistoryPath != "" {
		store, err := sqlite.Open(cfg.HistoryPath)
		if err != nil {
			log.Fatalf("Failed to open battle history: %v", err)
		}
		defer store.Close()
		deps.History = store
	}

	if cfg.Headless() {
		logger := log.New(os.Stdout, "", 0)
		if _, err := game.RunHeadless(ctx, cfg, deps, logger); err != nil {
			log.Fatalf("Battle failed: %v", err)
		}
		return
	}

	// Create and run game
	g, err := game.New(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the header
	// is built here from the key itself.
	apiKey := os.Getenv("HONEYCOMB_WORDBATTLE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_WORDBATTLE_DATASET")
	if dataset == "" {
		dataset = "wordbattle"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
