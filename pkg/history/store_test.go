package history

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kusaanko/BatFi/pkg/power"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreAppendAndRange(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	points := []power.StatePoint{
		{ID: uuid.New(), Timestamp: base, BatteryLevel: 60, Mode: power.ModeCharging, ChargerConnected: true},
		{ID: uuid.New(), Timestamp: base.Add(time.Minute), BatteryLevel: 61, Mode: power.ModeCharging, ChargerConnected: true},
		{ID: uuid.New(), Timestamp: base.Add(time.Hour), BatteryLevel: 80, Mode: power.ModeInhibit, ChargerConnected: true},
	}
	// Insert out of order to exercise the ORDER BY.
	for _, i := range []int{2, 0, 1} {
		if err := s.Append(points[i]); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.PointsInRange(base, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("PointsInRange: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	for i, p := range got {
		want := points[i]
		if p.ID != want.ID {
			t.Errorf("point %d ID = %s, want %s", i, p.ID, want.ID)
		}
		if !p.Timestamp.Equal(want.Timestamp) {
			t.Errorf("point %d Timestamp = %v, want %v", i, p.Timestamp, want.Timestamp)
		}
		if p.BatteryLevel != want.BatteryLevel {
			t.Errorf("point %d BatteryLevel = %d, want %d", i, p.BatteryLevel, want.BatteryLevel)
		}
		if p.Mode != want.Mode {
			t.Errorf("point %d Mode = %s, want %s", i, p.Mode, want.Mode)
		}
		if p.ChargerConnected != want.ChargerConnected {
			t.Errorf("point %d ChargerConnected = %v, want %v", i, p.ChargerConnected, want.ChargerConnected)
		}
	}

	// A narrower window excludes the late point.
	got, err = s.PointsInRange(base, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("PointsInRange: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(got) = %d, want 2", len(got))
	}
}

func TestStoreNotifiesOnAppend(t *testing.T) {
	s := openTestStore(t)

	var fired atomic.Int32
	token := s.Changes().Register(func() { fired.Add(1) })
	defer s.Changes().Unregister(token)

	p := power.StatePoint{ID: uuid.New(), Timestamp: time.Now(), BatteryLevel: 50, Mode: power.ModeCharging}
	if err := s.Append(p); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if n := fired.Load(); n != 1 {
		t.Errorf("change notifications = %d, want 1", n)
	}
}

func TestStoreDeleteOlderThan(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := power.StatePoint{
			ID:           uuid.New(),
			Timestamp:    base.Add(time.Duration(i) * time.Hour),
			BatteryLevel: 50 + i,
			Mode:         power.ModeCharging,
		}
		if err := s.Append(p); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	n, err := s.DeleteOlderThan(base.Add(2 * time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}

	got, err := s.PointsInRange(base, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("PointsInRange: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("remaining = %d, want 3", len(got))
	}
	if len(got) > 0 && !got[0].Timestamp.Equal(base.Add(2*time.Hour)) {
		t.Errorf("oldest remaining = %v, want %v", got[0].Timestamp, base.Add(2*time.Hour))
	}
}
