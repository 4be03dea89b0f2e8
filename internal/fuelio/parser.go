package fuelio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/phaus/fuelio-lubelogger-sync/internal/lubelogger"
)

// TimestampLayout is the timestamp format of Fuelio fillup rows. Rows whose
// first column does not parse with it belong to other sections of the export
// (costs, vehicle header) and are not fillups.
const TimestampLayout = "2006-01-02 15:04"

// Positions of the unnamed columns that follow the timestamp column in a
// fillup row. The export has no header for these, so the order is part of
// the format and must not change.
const (
	colOdometer = iota
	colFuelConsumed
	colFullTank
	colCost
	colPricePerUnit // unused
	colLatitude
	colLongitude
	colStation
	colNotes
	colMissedFillup
)

// minFillupColumns is the number of positional columns a fillup row carries.
const minFillupColumns = colMissedFillup + 1

// Record is one fillup row from a Fuelio vehicle sync CSV, with the
// positional columns lifted into named fields so indices do not leak
// past parsing.
type Record struct {
	Timestamp    time.Time
	Odometer     int
	FuelConsumed string
	FullTank     bool
	Cost         string
	Latitude     string
	Longitude    string
	Station      string
	Notes        string
	MissedFillup bool
}

// ParseRecord converts one raw CSV row into a Record. It returns an error
// when the row is not a fillup, which callers use as a content filter
// rather than a failure.
func ParseRecord(row []string) (Record, error) {
	if len(row) == 0 {
		return Record{}, fmt.Errorf("empty row")
	}

	timestamp, err := time.Parse(TimestampLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return Record{}, fmt.Errorf("row is not a fillup: %w", err)
	}

	fields := row[1:]
	if len(fields) < minFillupColumns {
		return Record{}, fmt.Errorf("fillup row has %d columns, expected at least %d", len(fields), minFillupColumns)
	}

	// The export stores the odometer as a float, Lubelogger wants an integer.
	odometer, err := strconv.ParseFloat(strings.TrimSpace(fields[colOdometer]), 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid odometer value %q: %w", fields[colOdometer], err)
	}

	return Record{
		Timestamp:    timestamp,
		Odometer:     int(odometer),
		FuelConsumed: strings.TrimSpace(fields[colFuelConsumed]),
		FullTank:     strings.TrimSpace(fields[colFullTank]) == "1",
		Cost:         strings.TrimSpace(fields[colCost]),
		Latitude:     strings.TrimSpace(fields[colLatitude]),
		Longitude:    strings.TrimSpace(fields[colLongitude]),
		Station:      strings.TrimSpace(fields[colStation]),
		Notes:        strings.TrimSpace(fields[colNotes]),
		MissedFillup: strings.TrimSpace(fields[colMissedFillup]) == "1",
	}, nil
}

// ParseCSV reads a Fuelio vehicle sync CSV and returns its fillup records.
// The export mixes several sections with varying column counts in one file;
// rows that do not parse as fillups are silently dropped.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		record, err := ParseRecord(row)
		if err != nil {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// ToFillup converts the record into its Lubelogger representation. The
// notes block embeds the station, a map link and the fill time, because
// Lubelogger has no dedicated fields for them.
func (r Record) ToFillup() lubelogger.Fillup {
	notes := fmt.Sprintf(
		"Fuel station: %s\n\nLocation: [%s,%s](https://www.google.com/maps/place/%s,%s)\n\nTime: %s",
		r.Station, r.Latitude, r.Longitude, r.Latitude, r.Longitude, r.Timestamp.Format("15:04"),
	)

	if r.Notes != "" {
		notes += "\n\n###### Fuelio notes:\n\n" + r.Notes
	}

	return lubelogger.Fillup{
		Date:         r.Timestamp.Format(lubelogger.DateLayout),
		Odometer:     r.Odometer,
		FuelConsumed: r.FuelConsumed,
		Cost:         r.Cost,
		IsFillToFull: r.FullTank,
		MissedFuelUp: r.MissedFillup,
		Notes:        notes,
	}
}
