package lubelogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillup_SetMembership(t *testing.T) {
	a := Fillup{Date: "01/01/2024", Odometer: 1000, FuelConsumed: "40.52", Cost: "55.00", IsFillToFull: true}
	same := Fillup{Date: "01/01/2024", Odometer: 1000, FuelConsumed: "40.52", Cost: "55.00", IsFillToFull: true}
	different := Fillup{Date: "01/01/2024", Odometer: 1000, FuelConsumed: "40.52", Cost: "57.00", IsFillToFull: true}

	set := map[Fillup]struct{}{a: {}}

	_, ok := set[same]
	assert.True(t, ok, "full-field equality must hold for identical fillups")

	_, ok = set[different]
	assert.False(t, ok, "a single differing field must break equality")
}

func TestFillup_Key(t *testing.T) {
	a := Fillup{Date: "01/01/2024", Odometer: 1000}
	b := Fillup{Date: "01/01/2024", Odometer: 2000}
	c := Fillup{Date: "02/01/2024", Odometer: 1000}

	assert.Equal(t, a.Key(), b.Key(), "same date means same identity key")
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestFillup_Diff(t *testing.T) {
	existing := Fillup{Date: "01/01/2024", Odometer: 1000, FuelConsumed: "40.52", Cost: "55.00", IsFillToFull: true, Notes: "n"}
	incoming := Fillup{Date: "01/01/2024", Odometer: 1010, FuelConsumed: "40.52", Cost: "57.50", IsFillToFull: true, Notes: "n"}

	diffs := incoming.Diff(existing)

	require.Len(t, diffs, 2)
	assert.Equal(t, FieldDiff{Field: "odometer", Existing: "1000", Incoming: "1010"}, diffs[0])
	assert.Equal(t, FieldDiff{Field: "cost", Existing: "55.00", Incoming: "57.50"}, diffs[1])
}

func TestFillup_DiffIdentical(t *testing.T) {
	fillup := Fillup{Date: "01/01/2024", Odometer: 1000}

	assert.Empty(t, fillup.Diff(fillup))
}
