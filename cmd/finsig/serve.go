package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finsig/finsig/internal/api"
	"github.com/finsig/finsig/internal/config"
	"github.com/finsig/finsig/internal/llm"
	"github.com/finsig/finsig/internal/llm/factory"
	"github.com/finsig/finsig/internal/logger"
	"github.com/finsig/finsig/internal/metrics"
	"github.com/finsig/finsig/internal/storage/archive"
	"github.com/finsig/finsig/internal/storage/bar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the finsig server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize logger
	log := logger.Must(debug)
	defer log.Sync()

	// Load config
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("starting finsig server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Int("short_window", cfg.Strategy.ShortWindow),
		zap.Int("long_window", cfg.Strategy.LongWindow),
	)

	registry := metrics.NewRegistry()
	store := bar.NewMemoryStore()

	snapshotter, err := buildSnapshotter(cfg, log)
	if err != nil {
		return err
	}

	analyst := buildAnalyst(cfg, log)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	// Create API server
	server, err := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		APIKey:      cfg.Server.APIKey,
		MetricsPath: metricsPath,
	}, api.Dependencies{
		Store:       store,
		Snapshotter: snapshotter,
		Analyst:     analyst,
		Windows:     cfg.Strategy.Windows(),
		Metrics:     registry,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down finsig server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

// buildSnapshotter creates the snapshot archive from config. Returns nil
// when archiving is disabled.
func buildSnapshotter(cfg *config.Config, log *zap.Logger) (*archive.Snapshotter, error) {
	switch cfg.Storage.Archive.Type {
	case "":
		return nil, nil
	case "localfs":
		fs, err := archive.NewLocalFS(cfg.Storage.Archive.Path)
		if err != nil {
			return nil, fmt.Errorf("creating localfs archive: %w", err)
		}
		log.Info("snapshot archive enabled",
			zap.String("type", "localfs"),
			zap.String("path", cfg.Storage.Archive.Path))
		return archive.NewSnapshotter(fs), nil
	case "s3":
		s3cfg := cfg.Storage.Archive.S3
		s3, err := archive.NewS3(archive.S3Config{
			Bucket:    s3cfg.Bucket,
			Endpoint:  s3cfg.Endpoint,
			Region:    s3cfg.Region,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
			Prefix:    s3cfg.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 archive: %w", err)
		}
		log.Info("snapshot archive enabled",
			zap.String("type", "s3"),
			zap.String("bucket", s3cfg.Bucket))
		return archive.NewSnapshotter(s3), nil
	default:
		return nil, fmt.Errorf("unknown archive type %q", cfg.Storage.Archive.Type)
	}
}

// buildAnalyst creates the LLM analyst from config. Returns nil when no
// provider is configured, which disables the analysis endpoint.
func buildAnalyst(cfg *config.Config, log *zap.Logger) *llm.Analyst {
	if cfg.LLM.Provider == "" {
		return nil
	}

	provider, err := factory.New(cfg.LLM)
	if err != nil {
		log.Warn("LLM provider unavailable, analysis endpoint disabled", zap.Error(err))
		return nil
	}

	log.Info("LLM analysis enabled", zap.String("provider", provider.Name()))
	return llm.NewAnalyst(provider)
}
