// Package settings holds the persisted daemon settings and exposes the
// charge-management flag as an observable stream.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

type rawSettings struct {
	ChargeLimit             int  `json:"chargeLimit"`
	ChargeManagementEnabled bool `json:"chargeManagementEnabled"`
}

var defaultSettings = rawSettings{
	ChargeLimit:             80,
	ChargeManagementEnabled: true,
}

// Settings is a JSON-file-backed settings store. Reads and writes are safe
// for concurrent use; flag changes are broadcast to watchers.
type Settings struct {
	mu       sync.RWMutex
	c        rawSettings
	filepath string
	watchers map[chan bool]struct{}
}

// NewFile loads settings from path, creating it with defaults when absent.
func NewFile(path string) (*Settings, error) {
	s := &Settings{
		filepath: path,
		watchers: make(map[chan bool]struct{}),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the settings file, falling back to defaults when it is
// missing.
func (s *Settings) Reload() error {
	return s.load()
}

func (s *Settings) load() error {
	if _, err := os.Stat(s.filepath); errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("settings file %s does not exist, using defaults %#v", s.filepath, defaultSettings)
		s.mu.Lock()
		s.c = defaultSettings
		s.mu.Unlock()
		return s.save()
	}

	b, err := os.ReadFile(s.filepath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Unmarshal(b, &s.c)
}

func (s *Settings) save() error {
	s.mu.RLock()
	b, err := json.MarshalIndent(s.c, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(s.filepath, b, 0644)
}

// ChargeLimit returns the configured charge limit percentage.
func (s *Settings) ChargeLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.ChargeLimit
}

// SetChargeLimit updates and persists the charge limit.
func (s *Settings) SetChargeLimit(limit int) error {
	s.mu.Lock()
	s.c.ChargeLimit = limit
	s.mu.Unlock()
	return s.save()
}

// ChargeManagementEnabled returns whether the daemon manages charging.
func (s *Settings) ChargeManagementEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.ChargeManagementEnabled
}

// SetChargeManagementEnabled updates and persists the flag, then notifies
// watchers.
func (s *Settings) SetChargeManagementEnabled(enabled bool) error {
	s.mu.Lock()
	s.c.ChargeManagementEnabled = enabled
	for ch := range s.watchers {
		// Non-blocking send; a watcher that has not drained the previous
		// value only cares about the newest one anyway.
		select {
		case ch <- enabled:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- enabled:
			default:
			}
		}
	}
	s.mu.Unlock()

	return s.save()
}

// WatchChargeManagement returns a stream of the charge-management flag. The
// current value is delivered immediately, then every change until ctx is
// cancelled.
func (s *Settings) WatchChargeManagement(ctx context.Context) <-chan bool {
	ch := make(chan bool, 1)

	s.mu.Lock()
	ch <- s.c.ChargeManagementEnabled
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		s.mu.Unlock()
		close(ch)
	}()

	return ch
}
