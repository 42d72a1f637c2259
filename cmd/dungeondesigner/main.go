// Package main is the entry point for the dungeon designer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeondesigner/internal/assets"
	"github.com/samdwyer/dungeondesigner/internal/config"
	"github.com/samdwyer/dungeondesigner/internal/designer"
	"github.com/samdwyer/dungeondesigner/internal/editor"
	"github.com/samdwyer/dungeondesigner/internal/logs"
	"github.com/samdwyer/dungeondesigner/internal/storage"
	"github.com/samdwyer/dungeondesigner/internal/telemetry"
	"github.com/samdwyer/dungeondesigner/internal/ui"
)

const appName = "dungeondesigner"

func main() {
	if err := run(); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "dungeondesigner: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file for local development; env vars might be set directly
	envErr := godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	logger, err := logs.New(appName, cfg.Log)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logger.Sync()
	if envErr != nil {
		logger.Debug(".env file not loaded", zap.Error(envErr))
	}

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		setupOTelEnv(cfg.Telemetry)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Continue without telemetry - the designer still works
			logger.Warn("telemetry setup failed, running without traces", zap.Error(err))
			telemetry.Disable()
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), cfg.Telemetry.ShutdownTimeout)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					logger.Warn("error shutting down telemetry", zap.Error(err))
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	registry, err := assets.LoadRegistry(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load asset catalog: %w", err)
	}

	var updates <-chan *assets.Registry
	if cfg.Catalog != "" {
		w, err := assets.Watch(cfg.Catalog, logger)
		if err != nil {
			logger.Warn("catalog changes will not be picked up", zap.String("catalog", cfg.Catalog), zap.Error(err))
		} else {
			defer w.Close()
			updates = w.Updates()
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	d := designer.New(designer.Options{
		Registry:     registry,
		Store:        store,
		Logger:       logger,
		FileName:     cfg.FileName,
		HistoryDepth: cfg.HistoryDepth,
	})
	d.NewDungeon("")
	if floors := registry.Floors(); len(floors) > 0 {
		d.SelectFloor(floors[0].GUID)
	}
	if walls := registry.Walls(); len(walls) > 0 {
		d.SelectWall(walls[0].GUID)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}

	ed := editor.New(screen, d, updates, editor.Config{
		Seed:        cfg.Layout.Seed,
		LayoutWidth: cfg.Layout.Width,
		LayoutDepth: cfg.Layout.Depth,
	}, logger)

	logger.Info("designer started",
		zap.String("save_location", d.SaveLocation()),
		zap.Int("assets", registry.Count()),
	)
	return ed.Run(ctx)
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreAppData:
		s, err := storage.OpenAppDataStore(cfg.AppName)
		if err != nil {
			return nil, fmt.Errorf("open app data: %w", err)
		}
		return s, nil
	default:
		return storage.NewOSFileStore(cfg.DataDir), nil
	}
}

// setupOTelEnv configures the OTLP exporter's environment variables from the
// telemetry settings.
func setupOTelEnv(cfg config.TelemetryConfig) {
	if cfg.Endpoint != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Endpoint)
	}
	if cfg.APIKey != "" {
		dataset := cfg.Dataset
		if dataset == "" {
			dataset = appName
		}
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", cfg.APIKey, dataset))
	}
}
