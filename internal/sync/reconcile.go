package sync

import (
	"sort"
	"time"

	"github.com/phaus/fuelio-lubelogger-sync/internal/lubelogger"
)

// Duplicate pairs an incoming fillup with an existing fillup on the same
// date whose other fields differ. These need manual review and are never
// added automatically.
type Duplicate struct {
	Incoming lubelogger.Fillup
	Existing lubelogger.Fillup
	Diffs    []lubelogger.FieldDiff
}

// Plan is the outcome of reconciling incoming fillups against the tracker.
type Plan struct {
	ToAdd      []lubelogger.Fillup
	Duplicates []Duplicate
}

// UpToDate reports whether there is nothing to add.
func (p *Plan) UpToDate() bool {
	return len(p.ToAdd) == 0
}

// Reconcile computes which incoming fillups must be added to the tracker.
//
// Membership is full-field equality: a fillup that is already present
// exactly is skipped. An incoming fillup that is not present but shares its
// date with an existing record is flagged as a likely duplicate instead of
// added, so re-entered fillups with drifted values never produce a second
// record. The result does not depend on the order of either input; ToAdd is
// sorted oldest first for log readability.
func Reconcile(incoming, existing []lubelogger.Fillup) *Plan {
	existingSet := make(map[lubelogger.Fillup]struct{}, len(existing))
	existingByDate := make(map[string]lubelogger.Fillup, len(existing))
	for _, fillup := range existing {
		existingSet[fillup] = struct{}{}
		if _, ok := existingByDate[fillup.Key()]; !ok {
			existingByDate[fillup.Key()] = fillup
		}
	}

	plan := &Plan{}
	seen := make(map[lubelogger.Fillup]struct{}, len(incoming))
	for _, fillup := range incoming {
		if _, ok := seen[fillup]; ok {
			continue
		}
		seen[fillup] = struct{}{}

		if _, ok := existingSet[fillup]; ok {
			continue
		}

		if match, ok := existingByDate[fillup.Key()]; ok {
			plan.Duplicates = append(plan.Duplicates, Duplicate{
				Incoming: fillup,
				Existing: match,
				Diffs:    fillup.Diff(match),
			})
			continue
		}

		plan.ToAdd = append(plan.ToAdd, fillup)
	}

	sort.Slice(plan.ToAdd, func(i, j int) bool {
		return fillupDate(plan.ToAdd[i]).Before(fillupDate(plan.ToAdd[j]))
	})
	sort.Slice(plan.Duplicates, func(i, j int) bool {
		return fillupDate(plan.Duplicates[i].Incoming).Before(fillupDate(plan.Duplicates[j].Incoming))
	})

	return plan
}

// fillupDate parses the tracker date for sorting; unparseable dates sort first.
func fillupDate(f lubelogger.Fillup) time.Time {
	t, err := time.Parse(lubelogger.DateLayout, f.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
