package mode

import (
	"context"

	"github.com/kusaanko/BatFi/pkg/power"
)

// Status labels shown next to the battery level.
const (
	LabelInhibiting  = "Inhibiting charging"
	LabelCharging    = "Charging"
	LabelDischarging = "Discharging"
	// LabelDisabled overrides the classification label whenever charge
	// management is switched off in settings.
	LabelDisabled = "Charge management disabled"
)

// Label returns the status label for a classification. When charge
// management is disabled the classification is irrelevant and the disabled
// label wins.
func Label(c power.Classification, managementEnabled bool) string {
	if !managementEnabled {
		return LabelDisabled
	}
	switch c {
	case power.ClassCharging:
		return LabelCharging
	case power.Discharging:
		return LabelDischarging
	default:
		return LabelInhibiting
	}
}

// WatchLabel merges the classification stream and the charge-management
// flag stream into a label stream with combine-latest semantics: a label is
// recomputed whenever either input produces a value, using the most recent
// value of the other, and nothing is emitted until both inputs have
// produced at least one value. The output closes when ctx is cancelled or
// both inputs are exhausted.
func WatchLabel(ctx context.Context, classifications <-chan power.Classification, enabled <-chan bool) <-chan string {
	out := make(chan string, 1)

	go func() {
		defer close(out)

		var (
			class       power.Classification
			en          bool
			haveClass   bool
			haveEnabled bool
		)

		emit := func() bool {
			if !haveClass || !haveEnabled {
				return true
			}
			select {
			case out <- Label(class, en):
				return true
			case <-ctx.Done():
				return false
			}
		}

		for classifications != nil || enabled != nil {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-classifications:
				if !ok {
					classifications = nil
					continue
				}
				class, haveClass = c, true
				if !emit() {
					return
				}
			case e, ok := <-enabled:
				if !ok {
					enabled = nil
					continue
				}
				en, haveEnabled = e, true
				if !emit() {
					return
				}
			}
		}
	}()

	return out
}
