package daemon

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kusaanko/BatFi/pkg/history"
	"github.com/kusaanko/BatFi/pkg/power"
	"github.com/kusaanko/BatFi/pkg/settings"
	"github.com/kusaanko/BatFi/pkg/smc"
)

// lowerLimitDelta is the hysteresis band below the charge limit. Charging
// resumes only after the level falls below limit-lowerLimitDelta, so the
// charger does not flap around the limit.
const lowerLimitDelta = 2

// controller consumes the snapshot stream, derives the app charging mode,
// drives the SMC accordingly, and records one state point per snapshot.
type controller struct {
	smc      *smc.AppleSMC
	store    *history.Store
	settings *settings.Settings

	mu       sync.Mutex
	mode     power.AppChargingMode
	override power.AppChargingMode // empty when control is automatic
	latest   *power.Snapshot
}

func newController(conn *smc.AppleSMC, store *history.Store, st *settings.Settings) *controller {
	return &controller{
		smc:      conn,
		store:    store,
		settings: st,
		mode:     power.ModeInitial,
	}
}

// run consumes snapshots until the channel closes.
func (c *controller) run(snapshots <-chan power.Snapshot) {
	for snap := range snapshots {
		c.handle(snap)
	}
}

func (c *controller) handle(snap power.Snapshot) {
	c.mu.Lock()
	c.latest = &snap
	prev := c.mode
	next := c.decideLocked(snap)
	c.mode = next
	c.mu.Unlock()

	if next != prev {
		logrus.Infof("charging mode %s -> %s (level %d%%, charger %t)", prev, next, snap.BatteryLevel, snap.ChargerConnected)
	}

	if err := c.apply(next); err != nil {
		logrus.Errorf("failed to apply charging mode %s: %v", next, err)
	}

	point := power.StatePoint{
		ID:               uuid.New(),
		Timestamp:        time.Now(),
		BatteryLevel:     snap.BatteryLevel,
		Mode:             next,
		ChargerConnected: snap.ChargerConnected,
	}
	if err := c.store.Append(point); err != nil {
		logrus.Errorf("failed to record state point: %v", err)
	}
}

// decideLocked derives the next charging mode from one snapshot. Caller
// holds c.mu.
func (c *controller) decideLocked(snap power.Snapshot) power.AppChargingMode {
	if !snap.ChargerConnected {
		return power.ModeChargerNotConnected
	}

	switch c.override {
	case power.ModeForceCharge, power.ModeForceDischarge:
		return c.override
	}

	if !c.settings.ChargeManagementEnabled() {
		return power.ModeCharging
	}

	limit := c.settings.ChargeLimit()
	if limit >= 100 {
		return power.ModeCharging
	}

	switch {
	case snap.BatteryLevel >= limit:
		return power.ModeInhibit
	case snap.BatteryLevel < limit-lowerLimitDelta:
		return power.ModeCharging
	}

	// Inside the hysteresis band: keep the previous charge/inhibit
	// decision. Any other previous mode resolves to inhibit, the safe
	// choice near the limit.
	if c.mode == power.ModeCharging || c.mode == power.ModeInhibit {
		return c.mode
	}
	return power.ModeInhibit
}

// apply drives the SMC into the state the mode calls for.
func (c *controller) apply(m power.AppChargingMode) error {
	switch m {
	case power.ModeCharging, power.ModeForceCharge, power.ModeChargerNotConnected, power.ModeInitial:
		return c.smc.EnableCharging()
	case power.ModeInhibit:
		if err := c.smc.DisableCharging(); err != nil {
			return err
		}
		// Keep running from the adapter while holding back charge.
		return c.smc.EnableAdapter()
	case power.ModeForceDischarge:
		if err := c.smc.DisableCharging(); err != nil {
			return err
		}
		return c.smc.DisableAdapter()
	}
	return fmt.Errorf("unknown charging mode %q", m)
}

// Mode returns the current app charging mode.
func (c *controller) Mode() power.AppChargingMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// LatestSnapshot returns the most recent snapshot, or nil before the first
// successful fetch.
func (c *controller) LatestSnapshot() *power.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

// SetOverride forces the controller into forceCharge or forceDischarge, or
// clears the override when m is empty.
func (c *controller) SetOverride(m power.AppChargingMode) error {
	switch m {
	case "", power.ModeForceCharge, power.ModeForceDischarge:
	default:
		return fmt.Errorf("mode %q cannot be forced", m)
	}

	c.mu.Lock()
	c.override = m
	c.mu.Unlock()

	logrus.Infof("charging mode override set to %q", m)
	return nil
}

// Override returns the current override, or empty when control is
// automatic.
func (c *controller) Override() power.AppChargingMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.override
}
