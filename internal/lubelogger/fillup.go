package lubelogger

import "strconv"

// DateLayout is the date format Lubelogger expects for gas records.
const DateLayout = "02/01/2006"

// Fillup represents a single fuel fillup as stored by Lubelogger.
//
// Every field is a plain comparable value, so Fillup works as a map key and
// two fillups are the same record if and only if all fields match. Quantity
// and cost are kept as the exact decimal strings from the source export;
// the API accepts them as strings, and string identity is the equality the
// reconciler depends on.
type Fillup struct {
	Date         string `json:"date"`
	Odometer     int    `json:"odometer"`
	FuelConsumed string `json:"fuelConsumed"`
	Cost         string `json:"cost"`
	IsFillToFull bool   `json:"isFillToFull"`
	MissedFuelUp bool   `json:"missedFuelUp"`
	Notes        string `json:"notes"`
}

// Key returns the identity key used to group likely duplicates. Two fillups
// on the same calendar date are treated as the same refueling event even
// when their other fields disagree.
func (f Fillup) Key() string {
	return f.Date
}

// FieldDiff describes a single field that differs between two fillups.
type FieldDiff struct {
	Field    string
	Existing string
	Incoming string
}

// Diff returns the fields of f that differ from the existing fillup,
// formatted for manual-review reporting.
func (f Fillup) Diff(existing Fillup) []FieldDiff {
	var diffs []FieldDiff

	add := func(field, existingValue, incomingValue string) {
		if existingValue != incomingValue {
			diffs = append(diffs, FieldDiff{Field: field, Existing: existingValue, Incoming: incomingValue})
		}
	}

	add("date", existing.Date, f.Date)
	add("odometer", strconv.Itoa(existing.Odometer), strconv.Itoa(f.Odometer))
	add("fuelConsumed", existing.FuelConsumed, f.FuelConsumed)
	add("cost", existing.Cost, f.Cost)
	add("isFillToFull", strconv.FormatBool(existing.IsFillToFull), strconv.FormatBool(f.IsFillToFull))
	add("missedFuelUp", strconv.FormatBool(existing.MissedFuelUp), strconv.FormatBool(f.MissedFuelUp))
	add("notes", existing.Notes, f.Notes)

	return diffs
}
