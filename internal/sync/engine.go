package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phaus/fuelio-lubelogger-sync/internal/fuelio"
	"github.com/phaus/fuelio-lubelogger-sync/internal/lubelogger"
)

// BackupSource provides the parsed fillup records from the source backup.
type BackupSource interface {
	FetchRecords(ctx context.Context) ([]fuelio.Record, error)
}

// Engine drives one sync pass: fetch, parse, reconcile, apply.
type Engine struct {
	source    BackupSource
	tracker   lubelogger.Client
	vehicleID int
	dryRun    bool
	logger    *log.Logger
}

// NewEngine creates a sync engine for one Lubelogger vehicle.
func NewEngine(source BackupSource, tracker lubelogger.Client, vehicleID int, dryRun bool, logger *log.Logger) *Engine {
	return &Engine{
		source:    source,
		tracker:   tracker,
		vehicleID: vehicleID,
		dryRun:    dryRun,
		logger:    logger,
	}
}

// Result summarizes a completed sync pass.
type Result struct {
	SourceFillups int
	Existing      int
	Added         int
	Duplicates    int
	UpToDate      bool
	Duration      time.Duration
}

// Run performs a single reconciliation pass. A source backup with no
// fillups is a successful no-op. The first failed tracker write aborts
// the run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	records, err := e.source.FetchRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source backup: %w", err)
	}
	e.logger.Debug("found fillups in source backup", "count", len(records))

	result := &Result{SourceFillups: len(records)}
	if len(records) == 0 {
		e.logger.Info("no fuel fillups found in source backup")
		result.UpToDate = true
		result.Duration = time.Since(start)
		return result, nil
	}

	incoming := make([]lubelogger.Fillup, 0, len(records))
	for _, record := range records {
		incoming = append(incoming, record.ToFillup())
	}

	existing, err := e.tracker.GetFillups(ctx, e.vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing fillups: %w", err)
	}
	e.logger.Debug("found existing fillups in tracker", "count", len(existing))
	result.Existing = len(existing)

	plan := Reconcile(incoming, existing)
	e.reportDuplicates(plan.Duplicates)
	result.Duplicates = len(plan.Duplicates)

	if plan.UpToDate() {
		e.logger.Info("nothing to add, fuel logs are up to date")
		result.UpToDate = true
		result.Duration = time.Since(start)
		return result, nil
	}

	for _, fillup := range plan.ToAdd {
		if e.dryRun {
			e.logger.Info("dry run: would add fuel fillup", "date", fillup.Date, "odometer", fillup.Odometer)
			continue
		}

		if err := e.tracker.AddFillup(ctx, e.vehicleID, fillup); err != nil {
			return nil, fmt.Errorf("failed to add fillup from %s: %w", fillup.Date, err)
		}
		e.logger.Info("added fuel fillup", "date", fillup.Date, "odometer", fillup.Odometer)
		result.Added++
	}

	result.Duration = time.Since(start)
	return result, nil
}

// reportDuplicates logs likely duplicates with their field-level differences
// so they can be patched manually in the tracker.
func (e *Engine) reportDuplicates(duplicates []Duplicate) {
	for _, dup := range duplicates {
		e.logger.Warn("found existing fillup with different attributes, likely a duplicate needing manual review",
			"date", dup.Incoming.Date)
		for _, diff := range dup.Diffs {
			e.logger.Warn("attribute mismatch", "field", diff.Field, "existing", diff.Existing, "incoming", diff.Incoming)
		}
	}
}
