package sync

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phaus/fuelio-lubelogger-sync/internal/fuelio"
	"github.com/phaus/fuelio-lubelogger-sync/internal/lubelogger"
)

// fakeSource returns canned records from the backup fetch.
type fakeSource struct {
	records []fuelio.Record
	err     error
}

func (f *fakeSource) FetchRecords(ctx context.Context) ([]fuelio.Record, error) {
	return f.records, f.err
}

// fakeTracker records every API call it receives.
type fakeTracker struct {
	existing []lubelogger.Fillup
	added    []lubelogger.Fillup
	addErr   error
	getCalls int
}

func (f *fakeTracker) GetFillups(ctx context.Context, vehicleID int) ([]lubelogger.Fillup, error) {
	f.getCalls++
	return f.existing, nil
}

func (f *fakeTracker) AddFillup(ctx context.Context, vehicleID int, fillup lubelogger.Fillup) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, fillup)
	return nil
}

func (f *fakeTracker) Ping(ctx context.Context) error {
	return nil
}

func testRecord(t *testing.T, timestamp string, odometer int) fuelio.Record {
	t.Helper()
	ts, err := time.Parse(fuelio.TimestampLayout, timestamp)
	require.NoError(t, err)
	return fuelio.Record{
		Timestamp:    ts,
		Odometer:     odometer,
		FuelConsumed: "40.52",
		FullTank:     true,
		Cost:         "55.00",
		Latitude:     "52.1",
		Longitude:    "13.4",
		Station:      "Shell",
	}
}

func newTestEngine(source BackupSource, tracker lubelogger.Client, dryRun bool) *Engine {
	return NewEngine(source, tracker, 1, dryRun, log.New(io.Discard))
}

func TestEngine_AddsNewFillup(t *testing.T) {
	source := &fakeSource{records: []fuelio.Record{testRecord(t, "2024-01-01 08:30", 1000)}}
	tracker := &fakeTracker{}

	result, err := newTestEngine(source, tracker, false).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, tracker.added, 1)
	assert.Equal(t, "01/01/2024", tracker.added[0].Date)
	assert.Equal(t, 1000, tracker.added[0].Odometer)
	assert.Equal(t, 1, result.Added)
	assert.False(t, result.UpToDate)
}

func TestEngine_UpToDateNoWrites(t *testing.T) {
	record := testRecord(t, "2024-01-01 08:30", 1000)
	source := &fakeSource{records: []fuelio.Record{record}}
	tracker := &fakeTracker{existing: []lubelogger.Fillup{record.ToFillup()}}

	result, err := newTestEngine(source, tracker, false).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, tracker.added)
	assert.True(t, result.UpToDate)
	assert.Equal(t, 0, result.Added)
}

func TestEngine_EmptySourceIsNoOp(t *testing.T) {
	source := &fakeSource{}
	tracker := &fakeTracker{}

	result, err := newTestEngine(source, tracker, false).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Zero(t, result.SourceFillups)
	assert.Zero(t, tracker.getCalls, "an empty backup must not hit the tracker at all")
}

func TestEngine_DryRunNoWrites(t *testing.T) {
	source := &fakeSource{records: []fuelio.Record{
		testRecord(t, "2024-01-01 08:30", 1000),
		testRecord(t, "2024-02-15 17:05", 1450),
	}}
	tracker := &fakeTracker{}

	result, err := newTestEngine(source, tracker, true).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, tracker.added)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 2, result.SourceFillups)
}

func TestEngine_DuplicateNotAdded(t *testing.T) {
	record := testRecord(t, "2024-01-01 08:30", 1000)
	existing := record.ToFillup()
	existing.Cost = "99.99"

	source := &fakeSource{records: []fuelio.Record{record}}
	tracker := &fakeTracker{existing: []lubelogger.Fillup{existing}}

	result, err := newTestEngine(source, tracker, false).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, tracker.added)
	assert.Equal(t, 1, result.Duplicates)
	assert.True(t, result.UpToDate)
}

func TestEngine_AddFailureAborts(t *testing.T) {
	source := &fakeSource{records: []fuelio.Record{testRecord(t, "2024-01-01 08:30", 1000)}}
	tracker := &fakeTracker{addErr: fmt.Errorf("server unavailable")}

	result, err := newTestEngine(source, tracker, false).Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "failed to add fillup from 01/01/2024")
}

func TestEngine_SourceFailurePropagates(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("no backup found")}
	tracker := &fakeTracker{}

	_, err := newTestEngine(source, tracker, false).Run(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to fetch source backup")
	assert.Empty(t, tracker.added)
}
