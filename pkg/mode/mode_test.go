package mode

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/kusaanko/BatFi/pkg/power"
)

func TestTimeFromSnapshot(t *testing.T) {
	if got := TimeFromSnapshot(nil); got != nil {
		t.Errorf("TimeFromSnapshot(nil) = %+v, want nil", got)
	}

	snap := &power.Snapshot{
		BatteryLevel: 72,
		IsCharging:   true,
		TimeToEmpty:  power.UnknownMinutes,
		TimeToFull:   34,
	}
	got := TimeFromSnapshot(snap)
	if got == nil {
		t.Fatal("TimeFromSnapshot returned nil for a valid snapshot")
	}
	if !got.Charging || got.TimeToFull != 34 || got.TimeToEmpty != power.UnknownMinutes || got.Percentage != 72 {
		t.Errorf("TimeFromSnapshot = %+v", got)
	}
}

func TestFormatTemperature(t *testing.T) {
	if got := FormatTemperature(nil, language.English); got != nil {
		t.Errorf("FormatTemperature(nil) = %q, want nil", *got)
	}

	temp := 23.7
	got := FormatTemperature(&temp, language.English)
	if got == nil {
		t.Fatal("FormatTemperature returned nil")
	}
	if !strings.Contains(*got, "23.7") || !strings.Contains(*got, "°C") {
		t.Errorf("FormatTemperature = %q, want it to contain 23.7 and °C", *got)
	}

	// Excess precision is trimmed to one fraction digit.
	temp = 30.54
	got = FormatTemperature(&temp, language.English)
	if got == nil || strings.Contains(*got, "30.54") {
		t.Errorf("FormatTemperature = %v, want one fraction digit", got)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name    string
		class   power.Classification
		enabled bool
		want    string
	}{
		{"inhibiting", power.Inhibiting, true, LabelInhibiting},
		{"charging", power.ClassCharging, true, LabelCharging},
		{"discharging", power.Discharging, true, LabelDischarging},
		{"disabled wins over charging", power.ClassCharging, false, LabelDisabled},
		{"disabled wins over discharging", power.Discharging, false, LabelDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.class, tt.enabled); got != tt.want {
				t.Errorf("Label(%v, %v) = %q, want %q", tt.class, tt.enabled, got, tt.want)
			}
		})
	}
}

func recvLabel(t *testing.T, ch <-chan string, timeout time.Duration) (string, bool) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			t.Fatal("label channel closed unexpectedly")
		}
		return s, true
	case <-time.After(timeout):
		return "", false
	}
}

func TestWatchLabelWaitsForBothInputs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	classifications := make(chan power.Classification)
	enabled := make(chan bool)
	out := WatchLabel(ctx, classifications, enabled)

	classifications <- power.ClassCharging
	if got, ok := recvLabel(t, out, 100*time.Millisecond); ok {
		t.Fatalf("label %q emitted before the flag stream produced a value", got)
	}

	enabled <- true
	got, ok := recvLabel(t, out, time.Second)
	if !ok {
		t.Fatal("no label after both inputs produced a value")
	}
	if got != LabelCharging {
		t.Errorf("label = %q, want %q", got, LabelCharging)
	}
}

func TestWatchLabelRecomputesOnEitherInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	classifications := make(chan power.Classification)
	enabled := make(chan bool)
	out := WatchLabel(ctx, classifications, enabled)

	classifications <- power.ClassCharging
	enabled <- true
	if got, _ := recvLabel(t, out, time.Second); got != LabelCharging {
		t.Fatalf("label = %q, want %q", got, LabelCharging)
	}

	// A flag flip alone recomputes with the retained classification.
	enabled <- false
	if got, _ := recvLabel(t, out, time.Second); got != LabelDisabled {
		t.Errorf("label = %q, want %q", got, LabelDisabled)
	}

	// Re-enabling restores the classification label.
	enabled <- true
	if got, _ := recvLabel(t, out, time.Second); got != LabelCharging {
		t.Errorf("label = %q, want %q", got, LabelCharging)
	}

	// A classification change alone recomputes with the retained flag.
	classifications <- power.Discharging
	if got, _ := recvLabel(t, out, time.Second); got != LabelDischarging {
		t.Errorf("label = %q, want %q", got, LabelDischarging)
	}
}

func TestWatchLabelClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	classifications := make(chan power.Classification)
	enabled := make(chan bool)
	out := WatchLabel(ctx, classifications, enabled)

	cancel()
	select {
	case _, ok := <-out:
		if ok {
			t.Fatal("got a label after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("label channel not closed after cancellation")
	}
}
