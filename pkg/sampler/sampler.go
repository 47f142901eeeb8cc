// Package sampler turns payloadless power change notifications into a
// fan-out stream of full power snapshots.
//
// The OS only says "something changed"; on every firing the sampler
// re-reads the complete snapshot on a dedicated worker goroutine and
// broadcasts it to all subscribers. Snapshots are not deduplicated by
// equality: a physical notification is assumed meaningful even when the
// refetched snapshot compares equal to the previous one.
package sampler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kusaanko/BatFi/pkg/notify"
	"github.com/kusaanko/BatFi/pkg/power"
	"github.com/kusaanko/BatFi/pkg/powersource"
)

const (
	// subscriberBuffer bounds each subscriber's channel. When a consumer
	// falls behind, the oldest buffered snapshot is dropped first: only the
	// newest readings matter.
	subscriberBuffer = 16
	// fetchQueueDepth bounds pending fetch jobs. One slot per subscriber
	// eager fetch plus a couple of coalesced notification refetches is
	// plenty.
	fetchQueueDepth = 8
	// fetchTimeout bounds one snapshot read, including the battery health
	// subprocess.
	fetchTimeout = 10 * time.Second
)

// Sampler owns one shared Bridge registration and fans snapshots out to any
// number of subscribers. The registration and the worker goroutine exist
// only while at least one subscriber is alive.
type Sampler struct {
	bridge *notify.Bridge
	src    powersource.Source
	health powersource.HealthReader

	mu     sync.Mutex
	subs   map[int]chan power.Snapshot
	nextID int
	token  notify.Token
	queue  *workQueue
}

// New returns a Sampler reading snapshots from src (and optionally health)
// whenever bridge fires.
func New(bridge *notify.Bridge, src powersource.Source, health powersource.HealthReader) *Sampler {
	return &Sampler{
		bridge: bridge,
		src:    src,
		health: health,
		subs:   make(map[int]chan power.Snapshot),
	}
}

// Subscribe returns a channel of snapshots. The subscriber first receives
// the current snapshot (fetched eagerly; on failure nothing is delivered
// until the next successful notification-triggered fetch), then every
// snapshot emitted while it stays subscribed. The channel is closed when
// ctx is cancelled; no deliveries happen after that.
func (s *Sampler) Subscribe(ctx context.Context) <-chan power.Snapshot {
	s.mu.Lock()
	ch := make(chan power.Snapshot, subscriberBuffer)
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	if len(s.subs) == 1 {
		s.startLocked()
	}
	queue := s.queue
	s.mu.Unlock()

	logrus.Debugf("power sampler subscriber %d added", id)

	// Eager fetch for the new subscriber only. Existing subscribers already
	// saw the current state.
	queue.submit(func() {
		if snap, ok := s.fetch(); ok {
			s.deliverTo(id, snap)
		}
	})

	go func() {
		<-ctx.Done()
		s.unsubscribe(id)
	}()

	return ch
}

// startLocked registers the shared bridge handler and starts the fetch
// worker. Caller holds s.mu.
func (s *Sampler) startLocked() {
	s.queue = newWorkQueue(fetchQueueDepth)
	queue := s.queue
	s.token = s.bridge.Register(func() {
		// Arbitrary OS thread: hand off immediately, never fetch inline.
		queue.submit(func() {
			if snap, ok := s.fetch(); ok {
				s.broadcast(snap)
			}
		})
	})
	logrus.Debug("power sampler started")
}

// unsubscribe removes one subscriber; the last removal unregisters the
// bridge handler and stops the worker so no background work leaks.
func (s *Sampler) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.subs[id]
	if !ok {
		return
	}
	delete(s.subs, id)
	close(ch)

	logrus.Debugf("power sampler subscriber %d removed", id)

	if len(s.subs) == 0 {
		s.bridge.Unregister(s.token)
		s.queue.close()
		s.queue = nil
		logrus.Debug("power sampler stopped, no subscribers left")
	}
}

// fetch reads one full snapshot. Failures are recoverable: they are logged
// and no value is produced.
func (s *Sampler) fetch() (power.Snapshot, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	snap, err := powersource.ReadSnapshot(ctx, s.src, s.health)
	if err != nil {
		logrus.Warnf("power snapshot fetch failed: %v", err)
		return power.Snapshot{}, false
	}
	return snap, true
}

// broadcast delivers snap to every live subscriber.
func (s *Sampler) broadcast(snap power.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		deliver(ch, snap)
	}
}

// deliverTo delivers snap to a single subscriber, if it is still live.
func (s *Sampler) deliverTo(id int, snap power.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.subs[id]; ok {
		deliver(ch, snap)
	}
}

// deliver performs a non-blocking send with a drop-oldest overflow policy.
// Caller holds s.mu, so the channel cannot be closed concurrently.
func deliver(ch chan power.Snapshot, snap power.Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
			logrus.Trace("slow power sampler subscriber, dropped oldest snapshot")
		default:
		}
	}
}
