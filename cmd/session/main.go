package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/recommender"
	"github.com/nguyentantai21042004/meeting-flow/internal/session"
	"github.com/nguyentantai21042004/meeting-flow/internal/source"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
	"github.com/nguyentantai21042004/meeting-flow/internal/summarizer"
)

func main() {
	ctx := context.Background()

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Streaming Lecture Summarization Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Source mode: %s", cfg.Source.Mode)
	log.Info(ctx, "Summary document: %s", cfg.Paths.Summary)
	log.Info(ctx, "Suggestions document: %s", cfg.Paths.Suggestions)
	log.Info(ctx, "Poll interval: %ds", cfg.Session.PollIntervalSeconds)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	var catalog recommender.Catalog
	if cfg.Paths.Catalog != "" {
		catalog, err = recommender.LoadCatalog(cfg.Paths.Catalog)
		if err != nil {
			log.Warn(ctx, "Catalog unavailable, continuing without retrieval: %v", err)
		}
	}

	sum := summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	rec := recommender.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, catalog, log)
	st := store.New(cfg.Session.WindowSeconds)

	src, err := buildSource(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to create source: %v", err)
		os.Exit(1)
	}

	sess := session.New(cfg, st, sum, rec, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "Session starting. Press Ctrl+C to stop.")
	if err := sess.Run(ctx, src); err != nil {
		log.Error(ctx, "Session ended with error: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Session complete")
}

func buildSource(cfg *config.Config, log logger.Logger) (source.Source, error) {
	switch cfg.Source.Mode {
	case "replay":
		return source.NewReplay(cfg.Source.ReplayFile, cfg.Source.Realtime, log), nil
	case "watch":
		return source.NewWatch(cfg.Source.WatchDir, log), nil
	case "gateway":
		return source.NewGateway(cfg.Source.GatewayURL, log), nil
	default:
		return nil, fmt.Errorf("unknown source mode %q", cfg.Source.Mode)
	}
}

// ensureDirectories creates the output directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	paths := []string{
		cfg.Paths.Transcript,
		cfg.Paths.Summary,
		cfg.Paths.Suggestions,
		cfg.Paths.Report,
	}

	for _, p := range paths {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if cfg.Source.Mode == "watch" {
		if err := os.MkdirAll(cfg.Source.WatchDir, 0755); err != nil {
			return fmt.Errorf("create watch directory: %w", err)
		}
	}

	return nil
}
