package powersource

import (
	"bufio"
	"context"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

const maximumCapacityMarker = "Maximum Capacity"

// SystemProfilerHealth reads the battery maximum capacity by running the
// system profiler power report and scanning its line-oriented "key: value"
// output for the Maximum Capacity marker.
type SystemProfilerHealth struct {
	command string
	args    []string
}

var _ HealthReader = (*SystemProfilerHealth)(nil)

// NewSystemProfilerHealth returns a HealthReader backed by
// "system_profiler SPPowerDataType".
func NewSystemProfilerHealth() *SystemProfilerHealth {
	return &SystemProfilerHealth{
		command: "system_profiler",
		args:    []string{"SPPowerDataType"},
	}
}

// MaximumCapacity runs the diagnostic subprocess and extracts the maximum
// capacity value. Any failure (launch error, marker absent, malformed line)
// yields "ok == false"; health is optional, so none of these is an error.
func (h *SystemProfilerHealth) MaximumCapacity(ctx context.Context) (string, bool) {
	out, err := exec.CommandContext(ctx, h.command, h.args...).Output()
	if err != nil {
		logrus.Debugf("battery health subprocess failed: %v", err)
		return "", false
	}

	capacity, ok := parseMaximumCapacity(string(out))
	if !ok {
		logrus.Debugf("battery health output has no %q line", maximumCapacityMarker)
	}
	return capacity, ok
}

// parseMaximumCapacity scans line-oriented "key: value" text for the
// maximum-capacity marker and returns its trimmed value.
func parseMaximumCapacity(out string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		if strings.TrimSpace(key) != maximumCapacityMarker {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}
