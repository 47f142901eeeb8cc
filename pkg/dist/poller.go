// Package dist polls the privileged helper for power-distribution readings
// and republishes them as a change-suppressed stream.
package dist

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kusaanko/BatFi/pkg/power"
)

// DefaultInterval is the polling cadence.
const DefaultInterval = time.Second

// Client fetches one power-distribution reading from the helper. The call
// crosses a process boundary and may fail at any time.
type Client interface {
	DistributionInfo(ctx context.Context) (power.DistributionInfo, error)
}

// Poller runs one background polling loop per subscription.
type Poller struct {
	client   Client
	interval time.Duration
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides the polling interval. Tests use short intervals.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// NewPoller returns a Poller fetching from client every DefaultInterval.
func NewPoller(client Client, opts ...Option) *Poller {
	p := &Poller{
		client:   client,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subscribe starts a polling loop and returns its emission channel. The
// first successful fetch is always emitted; afterwards a reading is emitted
// only when it differs from the last emitted one. Fetch failures are
// swallowed and the loop retries after a full interval. Cancelling ctx
// stops the loop promptly, interrupting the pending interval wait, and
// closes the channel; nothing is emitted after cancellation.
func (p *Poller) Subscribe(ctx context.Context) <-chan power.DistributionInfo {
	ch := make(chan power.DistributionInfo, 1)
	go p.loop(ctx, ch)
	return ch
}

func (p *Poller) loop(ctx context.Context, ch chan<- power.DistributionInfo) {
	defer close(ch)

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	var last *power.DistributionInfo
	for {
		info, err := p.client.DistributionInfo(ctx)
		switch {
		case err != nil:
			// Recoverable: skip this tick, keep polling.
			logrus.Debugf("power distribution fetch failed: %v", err)
		case last == nil || *last != info:
			select {
			case ch <- info:
			case <-ctx.Done():
				return
			}
			emitted := info
			last = &emitted
		}

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		timer.Reset(p.interval)
	}
}
