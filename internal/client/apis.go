package client

import (
	"context"
	"fmt"
	"time"

	"github.com/kusaanko/BatFi/pkg/power"
)

// DistributionInfo fetches the current power-distribution reading. It
// satisfies dist.Client.
func (c *Client) DistributionInfo(ctx context.Context) (power.DistributionInfo, error) {
	var info power.DistributionInfo
	if err := c.Get(ctx, "/power-distribution", &info); err != nil {
		return power.DistributionInfo{}, err
	}
	return info, nil
}

// Snapshot fetches the current power snapshot.
func (c *Client) Snapshot(ctx context.Context) (power.Snapshot, error) {
	var s power.Snapshot
	if err := c.Get(ctx, "/snapshot", &s); err != nil {
		return power.Snapshot{}, err
	}
	return s, nil
}

// ChargingMode fetches the app charging mode the daemon currently operates
// in.
func (c *Client) ChargingMode(ctx context.Context) (power.AppChargingMode, error) {
	var m power.AppChargingMode
	if err := c.Get(ctx, "/charging-mode", &m); err != nil {
		return "", err
	}
	return m, nil
}

// History fetches the recorded state points between from and to, ascending
// by timestamp.
func (c *Client) History(ctx context.Context, from, to time.Time) ([]power.StatePoint, error) {
	path := fmt.Sprintf("/history?from=%d&to=%d", from.Unix(), to.Unix())
	var points []power.StatePoint
	if err := c.Get(ctx, path, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// ChargeLimit fetches the configured charge limit.
func (c *Client) ChargeLimit(ctx context.Context) (int, error) {
	var limit int
	if err := c.Get(ctx, "/limit", &limit); err != nil {
		return 0, err
	}
	return limit, nil
}

// SetChargeLimit updates the charge limit.
func (c *Client) SetChargeLimit(ctx context.Context, limit int) error {
	return c.Put(ctx, "/limit", limit)
}

// ChargeManagementEnabled fetches the charge-management flag.
func (c *Client) ChargeManagementEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	if err := c.Get(ctx, "/charge-management", &enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

// SetChargeManagementEnabled updates the charge-management flag.
func (c *Client) SetChargeManagementEnabled(ctx context.Context, enabled bool) error {
	return c.Put(ctx, "/charge-management", enabled)
}
