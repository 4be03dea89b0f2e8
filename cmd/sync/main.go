package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/phaus/fuelio-lubelogger-sync/internal/config"
	"github.com/phaus/fuelio-lubelogger-sync/internal/fuelio"
	"github.com/phaus/fuelio-lubelogger-sync/internal/gdrive"
	"github.com/phaus/fuelio-lubelogger-sync/internal/lubelogger"
	syncer "github.com/phaus/fuelio-lubelogger-sync/internal/sync"
)

var (
	version = "dev"
)

func main() {
	parseFlags()

	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	if *configTest {
		logger.Info("configuration is valid")
		return
	}

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("sync failed", "error", err)
	}
}

// newLogger builds the logger that is handed through the sync pipeline.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fuelio-sync",
	})

	if *verbose || cfg.DebugEnabled() {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}

// run wires the collaborators together and performs one sync pass.
func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	// Resolve everything that can fail before any I/O happens.
	authType, err := gdrive.ParseAuthType(cfg.Drive.AuthType)
	if err != nil {
		return err
	}

	password, err := cfg.Lubelogger.ResolvePassword()
	if err != nil {
		return err
	}

	tracker, err := lubelogger.NewClient(cfg.Lubelogger.URL, cfg.Lubelogger.Username, password)
	if err != nil {
		return fmt.Errorf("failed to create Lubelogger client: %w", err)
	}
	defer tracker.Close()

	if *connectivityTest {
		if err := tracker.Ping(ctx); err != nil {
			return fmt.Errorf("connectivity test failed: %w", err)
		}
		logger.Info("Lubelogger API is reachable", "url", cfg.Lubelogger.URL)
		return nil
	}

	drive, err := gdrive.NewClient(ctx, gdrive.Options{
		AuthType:        authType,
		CredentialsFile: cfg.Drive.CredentialsFile,
		TokenFile:       cfg.Drive.TokenFile,
	})
	if err != nil {
		return fmt.Errorf("failed to create Drive client: %w", err)
	}

	source := fuelio.NewBackup(drive, cfg.Drive.FolderID, cfg.Fuelio.VehicleID, logger)
	engine := syncer.NewEngine(source, tracker, cfg.Lubelogger.VehicleID, *dryRun, logger)

	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("sync finished",
		"source", result.SourceFillups,
		"existing", result.Existing,
		"added", result.Added,
		"duplicates", result.Duplicates,
		"duration", result.Duration,
	)

	return nil
}
