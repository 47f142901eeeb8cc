package dist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kusaanko/BatFi/pkg/power"
)

// scriptedClient replays a fixed sequence of readings, then keeps serving
// the last one.
type scriptedClient struct {
	mu      sync.Mutex
	script  []power.DistributionInfo
	errs    []error
	pos     int
	fetches int
}

func (c *scriptedClient) DistributionInfo(ctx context.Context) (power.DistributionInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetches++
	i := c.pos
	if i >= len(c.script) {
		i = len(c.script) - 1
	} else {
		c.pos++
	}
	if i < len(c.errs) && c.errs[i] != nil {
		return power.DistributionInfo{}, c.errs[i]
	}
	return c.script[i], nil
}

func (c *scriptedClient) fetchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

func collect(t *testing.T, ch <-chan power.DistributionInfo, n int, timeout time.Duration) []power.DistributionInfo {
	t.Helper()
	var got []power.DistributionInfo
	deadline := time.After(timeout)
	for len(got) < n {
		select {
		case info, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed after %d emissions, want %d", len(got), n)
			}
			got = append(got, info)
		case <-deadline:
			t.Fatalf("timed out after %d emissions, want %d", len(got), n)
		}
	}
	return got
}

func TestPollerSuppressesUnchangedReadings(t *testing.T) {
	a := power.DistributionInfo{ACPower: 30, BatteryPower: 0, SystemPower: 30}
	b := power.DistributionInfo{ACPower: 45, BatteryPower: -5, SystemPower: 40}
	client := &scriptedClient{script: []power.DistributionInfo{a, a, b, b, a}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPoller(client, WithInterval(5*time.Millisecond))
	ch := p.Subscribe(ctx)

	got := collect(t, ch, 3, 2*time.Second)
	want := []power.DistributionInfo{a, b, a}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("emission %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPollerEmitsFirstSuccessAfterFailures(t *testing.T) {
	a := power.DistributionInfo{ACPower: 20, SystemPower: 20}
	errFetch := errors.New("daemon not running")
	client := &scriptedClient{
		script: []power.DistributionInfo{{}, {}, a},
		errs:   []error{errFetch, errFetch, nil},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPoller(client, WithInterval(5*time.Millisecond))
	ch := p.Subscribe(ctx)

	got := collect(t, ch, 1, 2*time.Second)
	if got[0] != a {
		t.Errorf("first emission = %+v, want %+v", got[0], a)
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	a := power.DistributionInfo{ACPower: 10, SystemPower: 10}
	client := &scriptedClient{script: []power.DistributionInfo{a}}

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(client, WithInterval(5*time.Millisecond))
	ch := p.Subscribe(ctx)

	collect(t, ch, 1, 2*time.Second)
	cancel()

	// The loop must wind down promptly and close the channel.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				goto closed
			}
		case <-deadline:
			t.Fatal("channel not closed after cancellation")
		}
	}
closed:

	n := client.fetchCount()
	time.Sleep(50 * time.Millisecond)
	if m := client.fetchCount(); m != n {
		t.Errorf("poller kept fetching after cancellation: %d -> %d", n, m)
	}
}
