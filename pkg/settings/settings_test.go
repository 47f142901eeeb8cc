package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batfi.json")

	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if got := s.ChargeLimit(); got != 80 {
		t.Errorf("ChargeLimit() = %d, want 80", got)
	}
	if !s.ChargeManagementEnabled() {
		t.Error("ChargeManagementEnabled() = false, want true")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults not persisted: %v", err)
	}
}

func TestSettingsPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batfi.json")

	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := s.SetChargeLimit(60); err != nil {
		t.Fatalf("SetChargeLimit: %v", err)
	}
	if err := s.SetChargeManagementEnabled(false); err != nil {
		t.Fatalf("SetChargeManagementEnabled: %v", err)
	}

	reopened, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile (reopen): %v", err)
	}
	if got := reopened.ChargeLimit(); got != 60 {
		t.Errorf("ChargeLimit() = %d, want 60", got)
	}
	if reopened.ChargeManagementEnabled() {
		t.Error("ChargeManagementEnabled() = true, want false")
	}
}

func TestReloadPicksUpExternalEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batfi.json")

	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"chargeLimit": 70, "chargeManagementEnabled": true}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := s.ChargeLimit(); got != 70 {
		t.Errorf("ChargeLimit() = %d, want 70", got)
	}
}

func recvFlag(t *testing.T, ch <-chan bool, timeout time.Duration) (bool, bool) {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("watcher channel closed unexpectedly")
		}
		return v, true
	case <-time.After(timeout):
		return false, false
	}
}

func TestWatchChargeManagement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batfi.json")

	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.WatchChargeManagement(ctx)

	// Current value is seeded immediately.
	v, ok := recvFlag(t, ch, time.Second)
	if !ok || !v {
		t.Fatalf("initial value = %v, %v, want true", v, ok)
	}

	if err := s.SetChargeManagementEnabled(false); err != nil {
		t.Fatalf("SetChargeManagementEnabled: %v", err)
	}
	v, ok = recvFlag(t, ch, time.Second)
	if !ok || v {
		t.Fatalf("after disable = %v, %v, want false", v, ok)
	}

	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("got a value after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("watcher channel not closed after cancellation")
	}
}

func TestWatcherKeepsOnlyNewestValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batfi.json")

	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.WatchChargeManagement(ctx)
	// Do not drain the seeded value; a stale buffered value must be
	// replaced by the newest one.
	if err := s.SetChargeManagementEnabled(false); err != nil {
		t.Fatalf("SetChargeManagementEnabled: %v", err)
	}

	v, ok := recvFlag(t, ch, time.Second)
	if !ok || v {
		t.Fatalf("got %v, %v, want the newest value false", v, ok)
	}
}
