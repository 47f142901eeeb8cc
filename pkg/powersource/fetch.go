package powersource

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kusaanko/BatFi/pkg/power"
)

// slowFetchWarnAfter is how long a snapshot read may take before a warning
// is logged. The read still proceeds; slowness is a symptom of being run on
// the wrong goroutine or of a wedged OS service, not an error.
const slowFetchWarnAfter = time.Second

// ReadSnapshot reads every snapshot field from src and aggregates them into
// a power.Snapshot. If any required field fails, it returns
// ErrRequiredDataMissing wrapped with the field name. Health is optional:
// when health is nil or the reading is unavailable, Snapshot.Health stays
// nil and no error is reported.
func ReadSnapshot(ctx context.Context, src Source, health HealthReader) (power.Snapshot, error) {
	start := time.Now()
	defer func() {
		if elapsed := time.Since(start); elapsed > slowFetchWarnAfter {
			logrus.Warnf("power snapshot fetch took %v, it should run on a dedicated worker", elapsed)
		}
	}()

	var s power.Snapshot
	var err error

	if s.BatteryLevel, err = src.BatteryLevel(); err != nil {
		return power.Snapshot{}, missingField("battery level", err)
	}
	if s.IsCharging, err = src.IsCharging(); err != nil {
		return power.Snapshot{}, missingField("charging flag", err)
	}
	if s.PowerSource, err = src.PowerSource(); err != nil {
		return power.Snapshot{}, missingField("power source", err)
	}
	if s.TimeToEmpty, err = src.TimeToEmpty(); err != nil {
		return power.Snapshot{}, missingField("time to empty", err)
	}
	if s.TimeToFull, err = src.TimeToFull(); err != nil {
		return power.Snapshot{}, missingField("time to full", err)
	}
	if s.OptimizedChargingEngaged, err = src.OptimizedChargingEngaged(); err != nil {
		return power.Snapshot{}, missingField("optimized charging flag", err)
	}
	if s.CycleCount, err = src.CycleCount(); err != nil {
		return power.Snapshot{}, missingField("cycle count", err)
	}

	hundredths, err := src.Temperature()
	if err != nil {
		return power.Snapshot{}, missingField("temperature", err)
	}
	s.Temperature = float64(hundredths) / 100.0

	if s.ChargerConnected, err = src.ChargerConnected(); err != nil {
		return power.Snapshot{}, missingField("charger connected flag", err)
	}

	if health != nil {
		if capacity, ok := health.MaximumCapacity(ctx); ok {
			s.Health = &capacity
		}
	}

	return s, nil
}

func missingField(field string, err error) error {
	return fmt.Errorf("%s: %v: %w", field, err, ErrRequiredDataMissing)
}
